package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	AllocatorModule  = "allocator"
	AnalyzerModule   = "analyzer"
	SerializerModule = "serializer"
	CodegenModule    = "codegen"
	CLIModule        = "cli"
)

var root atomic.Value

func init() {
	root.Store(NewLogger(DiscardHandler()))
}

func ParseLevel(lvl string) (slog.Level, error) {
	switch strings.ToUpper(lvl) {
	case "MAX", "MAXVERBOSITY":
		return levelMaxVerbosity, nil
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "CRIT", "CRITICAL":
		return LevelCrit, nil
	default:
		return 0, fmt.Errorf("invalid level: %s", lvl)
	}
}

// InitLogger installs a terminal logger writing to w as the root logger.
func InitLogger(w io.Writer, logLevel string) error {
	logLvl, err := ParseLevel(logLevel)
	if err != nil {
		return err
	}
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(w, logLvl, false)))
	return nil
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(l)
}

// Root returns the root logger
func Root() Logger {
	return root.Load().(Logger)
}

// --- Module management ---

// Debug and trace output is only emitted for enabled modules.  All modules
// are enabled until one is explicitly disabled.
var (
	moduleMutex    sync.RWMutex
	moduleDisabled = map[string]bool{}
)

// EnableModule enables debug/trace logging for the specified module.
func EnableModule(module string) {
	moduleMutex.Lock()
	defer moduleMutex.Unlock()
	delete(moduleDisabled, module)
}

// DisableModule disables debug/trace logging for the specified module.
func DisableModule(module string) {
	moduleMutex.Lock()
	defer moduleMutex.Unlock()
	moduleDisabled[module] = true
}

func isModuleEnabled(module string) bool {
	moduleMutex.RLock()
	defer moduleMutex.RUnlock()
	return !moduleDisabled[module]
}

// Trace logs a message at the trace level for a specific module.
func Trace(module string, msg string, ctx ...interface{}) {
	if !isModuleEnabled(module) {
		return
	}
	Root().Write(LevelTrace, module, msg, ctx...)
}

// Debug logs a message at the debug level for a specific module.
func Debug(module string, msg string, ctx ...interface{}) {
	if !isModuleEnabled(module) {
		return
	}
	Root().Write(slog.LevelDebug, module, msg, ctx...)
}

// The rest of the logging functions (Info, Warn, Error, Crit) dont filter on module
func Info(module string, msg string, ctx ...interface{}) {
	Root().Write(slog.LevelInfo, module, msg, ctx...)
}

func Warn(module string, msg string, ctx ...interface{}) {
	Root().Write(slog.LevelWarn, module, msg, ctx...)
}

func Error(module string, msg string, ctx ...interface{}) {
	Root().Write(slog.LevelError, module, msg, ctx...)
}

func Crit(module string, msg string, ctx ...interface{}) {
	Root().Crit(module, msg, ctx...)
}

func New(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}
