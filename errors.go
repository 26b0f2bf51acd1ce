package drivetab

import (
	"errors"
)

var (
	ErrInvalidReference  = errors.New("invalid reference")
	ErrNotFound          = errors.New("not found")
	ErrAmbiguousPath     = errors.New("ambiguous path")
	ErrNotAFile          = errors.New("not a file")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrAlreadyExists     = errors.New("already exists")
	ErrDriveError        = errors.New("drive error")
	ErrIOError           = errors.New("io error")
	ErrInvalidTable      = errors.New("invalid table")
	ErrInvalidOptions    = errors.New("invalid options")
)

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

func newDriveError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrDriveError,
		msg:        msg,
		cause:      cause,
	}
}

func newIOError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrIOError,
		msg:        msg,
		cause:      cause,
	}
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying.Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return []error{err.underlying}
	}
	return []error{err.underlying, err.cause}
}
