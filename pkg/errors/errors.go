// Package errors provides structured diagnostics for the card transition.
//
// Nothing in the transition is fatal. Clamped configuration values, failed
// snapshots and panicking host listeners are reported to a process-wide
// [ErrorHandler]. Calls whose preconditions are not met return silently.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a configuration value outside its valid range.
	KindConfig
	// KindPrecondition indicates a lifecycle call made before the host was attached.
	KindPrecondition
	// KindStale indicates a superseded animation or detached recognizer callback.
	KindStale
	// KindSnapshot indicates the presenting view could not be captured.
	KindSnapshot
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindPrecondition:
		return "precondition"
	case KindStale:
		return "stale"
	case KindSnapshot:
		return "snapshot"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// TransitionError represents a structured, non-fatal diagnostic.
type TransitionError struct {
	// Op is the operation that produced the diagnostic (e.g., "card.PresentedFrame").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "card.Listeners.OnDismissDidEnd").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// RangeError describes a value that was clamped into [Min, Max].
type RangeError struct {
	// Field names the configuration value.
	Field string
	// Value is the value as supplied.
	Value float64
	// Min and Max bound the accepted range.
	Min float64
	Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s=%g outside [%g, %g], clamped", e.Field, e.Value, e.Min, e.Max)
}

// Clamped returns the value after clamping.
func (e *RangeError) Clamped() float64 {
	if e.Value < e.Min {
		return e.Min
	}
	if e.Value > e.Max {
		return e.Max
	}
	return e.Value
}

// ConfigError represents a failure to load or validate a configuration file.
type ConfigError struct {
	// Path is the file that failed.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives diagnostics reported by the transition.
type ErrorHandler interface {
	// HandleError is called when a diagnostic is reported.
	HandleError(err *TransitionError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
