package logger

import (
	"github.com/fatih/color" // Colored console output for each log level
)

// Colorized printf-style functions, one per log level. Every message is
// expected to carry its own "[LEVEL]" prefix and trailing newline.

// Info reports normal progress in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn reports recoverable problems in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error reports failed commands and steps in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Plan reports commands that would run in dry-run mode, in yellow.
var Plan = color.New(color.FgYellow).PrintfFunc()

// Debug prints cyan messages once Init(true) has been called.
// Until then it is a no-op so packages can log before the CLI initializes logging.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug output.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		// Keep Debug callable but silent
		Debug = func(format string, a ...any) {}
	}
}
