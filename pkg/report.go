package pkg

import (
	"fmt"
	"runtime"
	"sync"
)

// ErrorFunc receives a structured error report: the function, file, and
// line at which the failure was detected, and a human-readable message.
type ErrorFunc func(function, file string, line int, msg string)

var (
	reportMutex sync.RWMutex
	reportFn    ErrorFunc = defaultErrorFunc
	silenced    bool
)

// SetErrorFunc replaces the process-wide error-report sink. Passing nil
// restores the default sink, which logs through [LogError].
func SetErrorFunc(fn ErrorFunc) {
	reportMutex.Lock()
	defer reportMutex.Unlock()
	if fn == nil {
		fn = defaultErrorFunc
	}
	reportFn = fn
}

// Silence suppresses (or re-enables) error reporting globally. It has no
// effect on the error values operations return, only on whether a report
// is additionally emitted. Used by tests that deliberately exercise
// failure paths and don't want them logged.
func Silence(s bool) {
	reportMutex.Lock()
	defer reportMutex.Unlock()
	silenced = s
}

// ReportError reports a failure detected by the caller of this function.
// The call site (function/file/line) is captured automatically.
func ReportError(msg string, args ...any) {
	reportMutex.RLock()
	fn, quiet := reportFn, silenced
	reportMutex.RUnlock()

	if quiet {
		return
	}

	function, file, line := caller()
	fn(function, file, line, formatArgs(msg, args...))
}

func caller() (function, file string, line int) {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown", "unknown", 0
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
	}
	return function, file, line
}

func defaultErrorFunc(function, file string, line int, msg string) {
	current().WithFields(map[string]any{
		"func": function,
		"file": file,
		"line": line,
	}).Error(msg)
}

// Wrap appends detail to sentinel's message ("sentinel: detail") while
// keeping sentinel matchable with errors.Is; an empty detail returns
// sentinel unchanged. This matches the pattern used throughout
// reg/virtual: report, then return a wrapped sentinel.
func Wrap(sentinel error, detail string) error {
	if detail == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}
