// Package logger provides the levelled loggers used by the command.
//
// Library packages do not log; the command reports pipeline progress
// through these loggers.
package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

var (
	// InfoLogger handles informational messages.
	InfoLogger *log.Logger
	// ErrorLogger handles error messages.
	ErrorLogger *log.Logger
	// DebugLogger handles debug messages.
	DebugLogger *log.Logger
)

// Initialize sets up loggers writing to stdout and stderr.
func Initialize(level string, development bool) {
	InitializeWriters(level, development, os.Stdout, os.Stderr)
}

// InitializeWriters sets up loggers with explicit destinations. Debug
// output is enabled only for level "debug"; level "error" also silences
// informational messages.
func InitializeWriters(level string, development bool, out, errOut io.Writer) {
	flags := log.Ldate | log.Ltime
	if development {
		flags |= log.Lshortfile
	}

	level = strings.ToLower(strings.TrimSpace(level))

	InfoLogger = log.New(out, "INFO: ", flags)
	if level == "error" {
		InfoLogger = log.New(io.Discard, "", 0)
	}
	ErrorLogger = log.New(errOut, "ERROR: ", flags)

	if level == "debug" {
		DebugLogger = log.New(out, "DEBUG: ", flags)
	} else {
		DebugLogger = log.New(io.Discard, "", 0)
	}
}

// Info logs informational messages.
func Info(message string, args ...any) {
	if InfoLogger != nil {
		InfoLogger.Printf(message, args...)
	}
}

// Debug logs debug messages.
func Debug(message string, args ...any) {
	if DebugLogger != nil {
		DebugLogger.Printf(message, args...)
	}
}

// Error logs error messages.
func Error(message string, args ...any) {
	if ErrorLogger != nil {
		ErrorLogger.Printf(message, args...)
	}
}

// Fatal logs fatal messages and terminates the program.
func Fatal(message string, args ...any) {
	if ErrorLogger != nil {
		ErrorLogger.Printf(message, args...)
	}
	os.Exit(1)
}
