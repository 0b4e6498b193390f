package client

import "errors"

var (
	ErrNoCommand       = errors.New("no command given")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingOperand  = errors.New("missing operand")
	ErrInvalidArgument = errors.New("invalid argument")
)
