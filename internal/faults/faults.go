package faults

import (
	"errors"
	"fmt"
)

// Kind is the category of a fault.
type Kind int

const (
	// KindConfiguration indicates a missing or invalid setting.
	KindConfiguration Kind = iota + 1
	// KindMalformedInput indicates a validator item that lacks fields its kind requires.
	KindMalformedInput
	// KindTemplateLoad indicates the report template could not be loaded or used.
	KindTemplateLoad
	// KindPlatform indicates a failed call to Looker or GitLab.
	KindPlatform
	// KindAuth indicates rejected credentials.
	KindAuth
)

// String returns the short tag used in error messages.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "CONFIG"
	case KindMalformedInput:
		return "MALFORMED_INPUT"
	case KindTemplateLoad:
		return "TEMPLATE"
	case KindPlatform:
		return "PLATFORM"
	case KindAuth:
		return "AUTH"
	default:
		return "UNKNOWN"
	}
}

// Fault is the typed error returned across package boundaries.
type Fault struct {
	Kind    Kind
	Message string
	Cause   error

	// Retryable marks transient platform failures (rate limits, 5xx, transport errors).
	Retryable bool
}

func (f *Fault) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", f.Kind, f.Message, f.Cause)
	}
	return fmt.Sprintf("[%s] %s", f.Kind, f.Message)
}

func (f *Fault) Unwrap() error {
	return f.Cause
}

// New creates a fault of the given kind.
func New(kind Kind, message string, cause error) *Fault {
	return &Fault{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether err is, or wraps, a fault of the given kind.
func Is(err error, kind Kind) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost fault in err's chain, or 0.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}

// IsRetryable reports whether err is a transient platform failure.
func IsRetryable(err error) bool {
	var f *Fault
	if !errors.As(err, &f) {
		return false
	}
	return f.Kind == KindPlatform && f.Retryable
}

// Configuration creates a configuration fault.
func Configuration(message string, cause error) *Fault {
	return New(KindConfiguration, message, cause)
}

// MalformedInput creates a malformed-input fault.
func MalformedInput(message string, cause error) *Fault {
	return New(KindMalformedInput, message, cause)
}

// TemplateLoad creates a template fault.
func TemplateLoad(message string, cause error) *Fault {
	return New(KindTemplateLoad, message, cause)
}

// Platform creates a non-retryable platform fault.
func Platform(message string, cause error) *Fault {
	return New(KindPlatform, message, cause)
}

// Transient creates a retryable platform fault.
func Transient(message string, cause error) *Fault {
	f := New(KindPlatform, message, cause)
	f.Retryable = true
	return f
}

// Auth creates an authentication fault.
func Auth(message string, cause error) *Fault {
	return New(KindAuth, message, cause)
}
