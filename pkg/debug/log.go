//go:build js && wasm
// +build js,wasm

// Package debug routes scheduler and reactive tracing to the browser console.
package debug

import (
	"fmt"
	"net/url"
	"strings"
	"syscall/js"

	"github.com/cyberinsights/inkwell/pkg/reactive"
	"github.com/cyberinsights/inkwell/pkg/scheduler"
)

// Enabled reports whether the page was opened with a debug query
// parameter, e.g. /posts/rsa?debug=1.
func Enabled() bool {
	search := js.Global().Get("location").Get("search")
	if search.Type() != js.TypeString {
		return false
	}
	q, err := url.ParseQuery(strings.TrimPrefix(search.String(), "?"))
	if err != nil {
		return false
	}
	_, ok := q["debug"]
	return ok
}

// EnableLogging enables debug logging for scheduler and reactive packages
func EnableLogging() {
	scheduler.SetDebugLog(Log)
	reactive.SetDebugLog(Log)
}

// Log logs a message to the console. Arguments are formatted in Go first;
// js.ValueOf panics on most Go types.
func Log(args ...interface{}) {
	js.Global().Get("console").Call("log", strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// Logf logs a formatted message to the console
func Logf(format string, args ...interface{}) {
	js.Global().Get("console").Call("log", fmt.Sprintf(format, args...))
}
