// Package logger provides verbose logging for the pragati CLI.
// When verbose mode is enabled via the --verbose flag, pipeline stages
// (extraction, chunking, embedding, retrieval, generation) are traced to stderr.
// Errors are always printed, regardless of verbosity.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func printf(onlyVerbose bool, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if onlyVerbose && !verbose {
		return
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	printf(true, "[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	printf(true, "[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	printf(true, "[WARN] ", format, args...)
}

// Error prints an error message. Unlike the other levels it is not gated
// on verbose mode; long-running commands such as watch rely on it.
func Error(format string, args ...any) {
	printf(false, "[ERROR] ", format, args...)
}

// Timed logs the start of a pipeline stage and returns a func that logs
// its elapsed time. Typical use: defer logger.Timed("embed")().
func Timed(stage string) func() {
	start := time.Now()
	Debug("%s: started", stage)
	return func() {
		Debug("%s: done in %s", stage, time.Since(start).Round(time.Millisecond))
	}
}
