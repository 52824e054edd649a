package config

import "errors"

// Resolution errors returned by [Load] and its helpers. All of them are
// wrapped with the offending flag, field, or path before being surfaced,
// so callers can match with errors.Is while still printing an actionable
// message.
var (
	// ErrVersion indicates that --version was supplied. It is a terminal
	// outcome, not a failure: callers print the version and exit 0.
	ErrVersion = errors.New("version requested")
	// ErrMissingOption indicates a required field was supplied by neither
	// the command line nor the config file.
	ErrMissingOption = errors.New("missing option")
	// ErrUnexpectedArguments indicates leftover positional arguments on
	// the command line; this program accepts none.
	ErrUnexpectedArguments = errors.New("unexpected arguments")
	// ErrInvalidLogLevel indicates a log level name outside the
	// off/error/warn/info/debug/trace set.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// HelpError carries the full usage text when -h / --help is supplied.
// Like [ErrVersion] it is a terminal outcome rather than a failure:
// callers print Usage and exit 0.
type HelpError struct {
	Usage string
}

func (e *HelpError) Error() string {
	return e.Usage
}
