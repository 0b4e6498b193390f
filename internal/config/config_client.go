package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the directory server address, with or without scheme.
	// Env: DIRECTORY_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	// Env: DIRECTORY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the configuration of the command-line directory client.
type ClientConfig struct {
	Adapter ClientAdapter

	// Login and Password are sent as Basic credentials on every request.
	// Env: DIRECTORY_LOGIN, DIRECTORY_PASSWORD
	Login    string `env:"LOGIN"`
	Password string `env:"PASSWORD"`

	// Language is sent as Accept-Language (e.g. "en", "ru").
	// Env: DIRECTORY_LANG
	Language string `env:"LANG"`

	// Env: DIRECTORY_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// ClientDefaults returns the client configuration used when no source
// overrides a field.
func ClientDefaults() *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		LogLevel: "error",
	}
}

// GetClientConfig merges defaults, DIRECTORY_* environment variables and
// the leading flags of args, in that order of precedence.
//
// The arguments left after the flags (the command and its operands) are
// returned alongside the validated [ClientConfig].
//
// Flags:
//
//	-a directory server address
//	-u login
//	-p password
//	-lang language of gender labels
//	-request-timeout request timeout (e.g., "5s")
//	-log-level log level (debug, info, warn, error)
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	envCfg := &ClientConfig{}
	if err := env.ParseWithOptions(envCfg, env.Options{Prefix: "DIRECTORY_"}); err != nil {
		return nil, nil, fmt.Errorf("error getting env configs: %w", err)
	}

	flagsCfg, rest, err := parseClientFlags(args)
	if err != nil {
		return nil, nil, err
	}

	cfg := ClientDefaults()
	for _, src := range []*ClientConfig{envCfg, flagsCfg} {
		if err = mergo.Merge(cfg, src, mergo.WithOverride); err != nil {
			return nil, nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return cfg, rest, cfg.validate()
}

func parseClientFlags(args []string) (*ClientConfig, []string, error) {
	cfg := &ClientConfig{}

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.Adapter.HTTPAddress, "a", "", "Directory server address")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 5s)")
	fs.StringVar(&cfg.Login, "u", "", "Login")
	fs.StringVar(&cfg.Password, "p", "", "Password")
	fs.StringVar(&cfg.Language, "lang", "", "Language of gender labels (ru, en)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return cfg, fs.Args(), nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidClientConfigs
	}
	if cfg.Password != "" && cfg.Login == "" {
		return errors.Join(ErrInvalidClientConfigs, errors.New("password given without login"))
	}

	return nil
}
