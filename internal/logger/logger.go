package logger

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2/data/binding"
)

// LogLevel defines the severity of the log
type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelError
	LevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelDebug:
		return "DEBUG"
	default:
		return "INFO"
	}
}

// maxUILines keeps the on-screen history manageable
const maxUILines = 100

// Logger is what the engine packages log through.
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// AppLogger handles application logging to UI and console
type AppLogger struct {
	dataBinding binding.StringList
	debug       bool
}

// NewAppLogger creates a logger that appends Info/Error lines to the UI list.
func NewAppLogger(data binding.StringList, debug bool) *AppLogger {
	return &AppLogger{
		dataBinding: data,
		debug:       debug,
	}
}

// NewConsoleLogger creates a logger for the command-line tools (stdout only).
func NewConsoleLogger(debug bool) *AppLogger {
	return &AppLogger{debug: debug}
}

// Info logs an informational message
func (l *AppLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Error logs an error message
func (l *AppLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Debug logs a debug message to stdout only (to keep UI clean)
func (l *AppLogger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05")
	fmt.Printf("[DEBUG] [%s] %s\n", timestamp, msg)
}

// log handles the formatting and appending
func (l *AppLogger) log(level LogLevel, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05")
	formattedMsg := fmt.Sprintf("[%s] %s: %s", timestamp, level, msg)

	if l.dataBinding == nil {
		fmt.Println(formattedMsg)
		return
	}

	l.dataBinding.Append(formattedMsg)

	list, _ := l.dataBinding.Get()
	if len(list) > maxUILines {
		l.dataBinding.Set(list[len(list)-maxUILines:])
	}
}

type discard struct{}

func (discard) Info(string, ...interface{})  {}
func (discard) Error(string, ...interface{}) {}
func (discard) Debug(string, ...interface{}) {}

// Discard drops everything. Used by tests.
var Discard Logger = discard{}
