package client

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-user-directory/internal/adapter"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) (any, error)
}

// App dispatches commands to a directory server.
type App struct {
	directory adapter.DirectoryClient
	out       io.Writer
	commands  map[string]command
	logger    *logger.Logger
}

// NewApp returns an [App] that prints results to out.
func NewApp(directory adapter.DirectoryClient, out io.Writer, logger *logger.Logger) *App {
	a := &App{
		directory: directory,
		out:       out,
		logger:    logger,
	}

	a.commands = map[string]command{
		"version":         {usage: "version", run: a.version},
		"auth":            {usage: "auth LOGIN PASSWORD", run: a.authenticate},
		"create":          {usage: "create -login L -password P -name N [-gender 0|1|2] [-birthday YYYY-MM-DD] [-admin]", run: a.create},
		"update-info":     {usage: "update-info -login L -name N [-gender 0|1|2] [-birthday YYYY-MM-DD]", run: a.updateInfo},
		"change-password": {usage: "change-password -login L [-old P] -new P", run: a.changePassword},
		"change-login":    {usage: "change-login -old L -new L [-password P]", run: a.changeLogin},
		"list":            {usage: "list", run: a.listActive},
		"get":             {usage: "get LOGIN", run: a.get},
		"older-than":      {usage: "older-than AGE", run: a.listOlderThan},
		"delete":          {usage: "delete [-hard] LOGIN", run: a.delete},
		"restore":         {usage: "restore LOGIN", run: a.restore},
	}

	return a
}

// Run executes args[0] with the remaining operands and writes its result.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w\n%s", ErrNoCommand, a.Usage())
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w %q\n%s", ErrUnknownCommand, args[0], a.Usage())
	}

	result, err := cmd.run(ctx, args[1:])
	if err != nil {
		a.logger.Debug().Err(err).Str("command", args[0]).Msg("command failed")
		return fmt.Errorf("%s: %w", args[0], err)
	}

	return a.print(result)
}

// Usage lists every command with its arguments.
func (a *App) Usage() string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("commands:\n")
	for _, name := range names {
		b.WriteString("  " + a.commands[name].usage + "\n")
	}

	return b.String()
}

func (a *App) print(result any) error {
	switch v := result.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(a.out, v)
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (a *App) version(ctx context.Context, _ []string) (any, error) {
	return a.directory.Version(ctx)
}

func (a *App) authenticate(ctx context.Context, args []string) (any, error) {
	if len(args) < 2 {
		return nil, ErrMissingOperand
	}

	return a.directory.Authenticate(ctx, models.Credentials{Login: args[0], Password: args[1]})
}

func (a *App) create(ctx context.Context, args []string) (any, error) {
	var req models.CreateAccountRequest
	var birthday string
	gender := int(models.GenderUnspecified)

	fs := newFlagSet("create")
	fs.StringVar(&req.Login, "login", "", "login")
	fs.StringVar(&req.Password, "password", "", "password")
	fs.StringVar(&req.Name, "name", "", "name")
	fs.IntVar(&gender, "gender", gender, "0 female, 1 male, 2 unknown")
	fs.StringVar(&birthday, "birthday", "", "YYYY-MM-DD")
	fs.BoolVar(&req.Admin, "admin", false, "grant administrator rights")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	var err error
	req.Gender = models.Gender(gender)
	if req.Birthday, err = parseBirthday(birthday); err != nil {
		return nil, err
	}

	return a.directory.Create(ctx, req)
}

func (a *App) updateInfo(ctx context.Context, args []string) (any, error) {
	var req models.UpdateInfoRequest
	var birthday string
	gender := int(models.GenderUnspecified)

	fs := newFlagSet("update-info")
	fs.StringVar(&req.Login, "login", "", "login")
	fs.StringVar(&req.Name, "name", "", "name")
	fs.IntVar(&gender, "gender", gender, "0 female, 1 male, 2 unknown")
	fs.StringVar(&birthday, "birthday", "", "YYYY-MM-DD")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	var err error
	req.Gender = models.Gender(gender)
	if req.Birthday, err = parseBirthday(birthday); err != nil {
		return nil, err
	}

	return a.directory.UpdateInfo(ctx, req)
}

func (a *App) changePassword(ctx context.Context, args []string) (any, error) {
	var req models.UpdatePasswordRequest

	fs := newFlagSet("change-password")
	fs.StringVar(&req.Login, "login", "", "login")
	fs.StringVar(&req.OldPassword, "old", "", "current password, ignored for administrators")
	fs.StringVar(&req.NewPassword, "new", "", "new password")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	return a.directory.ChangePassword(ctx, req)
}

func (a *App) changeLogin(ctx context.Context, args []string) (any, error) {
	var req models.UpdateLoginRequest

	fs := newFlagSet("change-login")
	fs.StringVar(&req.OldLogin, "old", "", "current login")
	fs.StringVar(&req.NewLogin, "new", "", "new login")
	fs.StringVar(&req.Password, "password", "", "password, ignored for administrators")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	return a.directory.ChangeLogin(ctx, req)
}

func (a *App) listActive(ctx context.Context, _ []string) (any, error) {
	return a.directory.ListActive(ctx)
}

func (a *App) get(ctx context.Context, args []string) (any, error) {
	login, err := operand(args)
	if err != nil {
		return nil, err
	}

	return a.directory.GetByLogin(ctx, login)
}

func (a *App) listOlderThan(ctx context.Context, args []string) (any, error) {
	raw, err := operand(args)
	if err != nil {
		return nil, err
	}

	age, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: age %q", ErrInvalidArgument, raw)
	}

	return a.directory.ListOlderThan(ctx, age)
}

func (a *App) delete(ctx context.Context, args []string) (any, error) {
	var hard bool

	fs := newFlagSet("delete")
	fs.BoolVar(&hard, "hard", false, "remove the account instead of revoking it")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	login, err := operand(fs.Args())
	if err != nil {
		return nil, err
	}
	if err = a.directory.Delete(ctx, login, hard); err != nil {
		return nil, err
	}

	return fmt.Sprintf("account %q deleted", login), nil
}

func (a *App) restore(ctx context.Context, args []string) (any, error) {
	login, err := operand(args)
	if err != nil {
		return nil, err
	}

	return a.directory.Restore(ctx, login)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

func operand(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", ErrMissingOperand
	}
	return args[0], nil
}

func parseBirthday(raw string) (*models.Date, error) {
	if raw == "" {
		return nil, nil
	}

	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: birthday: %w", ErrInvalidArgument, err)
	}
	return &d, nil
}
