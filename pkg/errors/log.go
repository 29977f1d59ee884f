package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs diagnostics to a writer.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Writer receives the output. Defaults to os.Stderr.
	Writer io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Writer != nil {
		return h.Writer
	}
	return os.Stderr
}

// HandleError logs a TransitionError.
func (h *LogHandler) HandleError(err *TransitionError) {
	if err == nil {
		return
	}
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "[card %s] %s: %v\n", err.Kind, err.Op, err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "[card] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[card panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[card panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
