// Package log installs the process-wide slog logger.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Setup sends slog output as JSON to a rotating file. Only the first call
// has an effect.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		slog.SetDefault(slog.New(newHandler(newRotator(logFile), debug)))
		initialized.Store(true)
	})
}

func newRotator(logFile string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // Max size in MB
		MaxBackups: 3,
		MaxAge:     30, // Days
		Compress:   false,
	}
}

func newHandler(w *lumberjack.Logger, debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
}

func Initialized() bool {
	return initialized.Load()
}

// RecoverPanic is deferred at the top of goroutines. A panic is written to
// a timestamped file in the working directory and logged, then cleanup runs.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		writePanicFile(".", name, r, debug.Stack())
		slog.Error("Recovered from panic", "name", name, "panic", r)
		if cleanup != nil {
			cleanup()
		}
	}
}

func writePanicFile(dir, name string, r any, stack []byte) string {
	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Join(dir, fmt.Sprintf("menuboard-panic-%s-%s.log", name, timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return ""
	}
	defer file.Close()

	fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
	fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "Stack Trace:\n%s\n", stack)
	return filename
}
