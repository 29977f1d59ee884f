package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every reported diagnostic. It starts as a
	// quiet LogHandler writing to stderr.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler replaces DefaultHandler. Nil restores a quiet LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends a diagnostic to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *TransitionError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if h := getHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// Recover reports a panic in flight as a PanicError. Defer it directly:
//
//	defer errors.Recover("host.frameLoop")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// Guard runs fn and reports a panic instead of propagating it. It returns
// false when fn panicked.
func Guard(op string, fn func()) (ok bool) {
	if fn == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
			reportRecovered(op, r)
		}
	}()
	fn()
	return true
}

func reportRecovered(op string, value any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      value,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// CaptureStack returns the calling goroutine's stack, one function and
// file:line pair per frame, starting above its caller.
func CaptureStack() string {
	pcs := make([]uintptr, 32)
	pcs = pcs[:runtime.Callers(3, pcs)]
	if len(pcs) == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		f, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			return sb.String()
		}
	}
}
