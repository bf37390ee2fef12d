package prettier

import (
	"github.com/pkg/errors"
)

// Name prefixes errors surfaced to clients.
const Name = "prettier"

// Error kinds carried by FormatError.
var (
	// ErrUnsupportedType is a usage error: the content cannot be formatted
	// at all (functions, channels). It is never swallowed.
	ErrUnsupportedType = errors.New("unsupported content type")

	// ErrEngineFailure means the formatting engine rejected the content.
	ErrEngineFailure = errors.New("formatting engine failure")
)

// FormatError describes a failed Format call.
type FormatError struct {
	Kind    error
	Grammar string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

// Is matches the error kind, so errors.Is(err, ErrEngineFailure) works.
func (e *FormatError) Is(target error) bool {
	return target == e.Kind
}

func (e *FormatError) Unwrap() error { return e.Err }

// PublicMessage is safe to show to API clients.
func (e *FormatError) PublicMessage() string {
	return Name + " run into an unexpected error: " + e.Error()
}

func unsupported(format string, args ...any) *FormatError {
	return &FormatError{Kind: ErrUnsupportedType, Err: errors.Errorf(format, args...)}
}

func engineFailure(grammar string, err error) *FormatError {
	return &FormatError{Kind: ErrEngineFailure, Grammar: grammar, Err: err}
}
