package optio

import (
	"fmt"
	stdio "io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelSuccess:
		return "SUCCESS"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogFormat defines the output format for log messages
type LogFormat int

const (
	LogFormatTagged LogFormat = iota // [INFO] [WARN] ...
	LogFormatProg                    // prog: message
	LogFormatPlain                   // no prefix
)

// Logger writes user-facing diagnostics through a ProgramContext. Errors and
// warnings go to the error sink, everything else to the output sink.
type Logger struct {
	pc         *ProgramContext
	format     LogFormat
	minLevel   LogLevel
	withTime   bool
	timeFormat string
	theme      Theme
}

// NewLogger creates a logger bound to the given context
func NewLogger(pc *ProgramContext) *Logger {
	return &Logger{
		pc:         pc,
		format:     LogFormatProg,
		minLevel:   LevelInfo,
		timeFormat: "15:04:05",
		theme:      DefaultTheme(),
	}
}

// WithFormat sets the log format and returns the logger for chaining
func (l *Logger) WithFormat(format LogFormat) *Logger { l.format = format; return l }

// WithLevel sets the lowest level that is written.
func (l *Logger) WithLevel(level LogLevel) *Logger { l.minLevel = level; return l }

// WithTimestamp enables or disables timestamp in log output
func (l *Logger) WithTimestamp(enabled bool) *Logger { l.withTime = enabled; return l }

// WithTheme sets a custom theme for semantic colors
func (l *Logger) WithTheme(theme Theme) *Logger { l.theme = theme; return l }

// Log outputs a log message at the specified level
func (l *Logger) Log(level LogLevel, format string, args ...any) {
	if level < l.minLevel {
		return
	}
	w := l.writer(level)
	fmt.Fprintln(w, l.formatMessage(w, level, fmt.Sprintf(format, args...)))
}

func (l *Logger) formatMessage(w stdio.Writer, level LogLevel, msg string) string {
	if strings.TrimSpace(msg) == "" {
		return msg
	}
	var prefix string
	switch l.format {
	case LogFormatTagged:
		prefix = "[" + level.String() + "]"
	case LogFormatProg:
		prefix = l.pc.Prog() + ":"
	case LogFormatPlain:
	}
	if prefix != "" {
		prefix = l.pc.Paint(w, prefix, l.attrs(level)...)
	}
	if l.withTime {
		ts := time.Now().Format(l.timeFormat)
		if prefix == "" {
			prefix = ts
		} else {
			prefix += " " + ts
		}
	}
	if prefix == "" {
		return msg
	}
	return prefix + " " + msg
}

func (l *Logger) attrs(level LogLevel) []color.Attribute {
	switch level {
	case LevelDebug:
		return l.theme.Debug
	case LevelInfo:
		return l.theme.Info
	case LevelSuccess:
		return l.theme.Success
	case LevelWarning:
		return l.theme.Warning
	case LevelError:
		return l.theme.Error
	default:
		return nil
	}
}

func (l *Logger) writer(level LogLevel) stdio.Writer {
	if level >= LevelWarning {
		return l.pc.Err()
	}
	return l.pc.Out()
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...any) { l.Log(LevelDebug, format, args...) }

// Info logs an informational message
func (l *Logger) Info(format string, args ...any) { l.Log(LevelInfo, format, args...) }

// Success logs a success message
func (l *Logger) Success(format string, args ...any) { l.Log(LevelSuccess, format, args...) }

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...any) { l.Log(LevelWarning, format, args...) }

// Error logs an error message
func (l *Logger) Error(format string, args ...any) { l.Log(LevelError, format, args...) }
