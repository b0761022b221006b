package darshan

import (
	"fmt"
	"strings"
)

// Logger is the structured logger used across the client packages.
// Arguments after the message are key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// DefaultLogger returns the stdout logger used when none is configured.
func DefaultLogger() Logger {
	return defLogger{}
}

// NormalizeLogger returns logger or the default logger when nil.
func NormalizeLogger(logger Logger) Logger {
	if logger == nil {
		return defLogger{}
	}
	return logger
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Print(line("[ERR] DARSHAN ", msg, args))
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Print(line("[WRN] DARSHAN ", msg, args))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Print(line("[INF] DARSHAN ", msg, args))
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Print(line("[DBG] DARSHAN ", msg, args))
}

func line(prefix, msg string, args []any) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
			continue
		}
		fmt.Fprintf(&b, " %v", args[i])
	}
	return newline(b.String())
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
