// Package log provides levelled, categorized logging for the editor.
//
// Lines look like:
//
//	2026-01-02T15:04:05.000 [INFO] [edit] applied offset=12 delta=3
//
// A Logger writes to any io.Writer and discards everything by default;
// the CLI points it at a file with --log-file.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name, ignoring case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Category groups related log messages.
type Category string

const (
	CatEdit    Category = "edit"    // buffer edits, undo and redo
	CatLexer   Category = "lexer"   // re-lexing
	CatInput   Category = "input"   // key dispatch and expansion
	CatConfig  Category = "config"  // configuration loading and watching
	CatDialect Category = "dialect" // keyword tables and dialect files
)

// Logger provides structured logging.
type Logger struct {
	mu       *sync.Mutex
	writer   io.Writer
	minLevel Level
	fields   []string
	now      func() time.Time
}

// New creates a logger writing lines at or above minLevel to w.
func New(w io.Writer, minLevel Level) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		mu:       &sync.Mutex{},
		writer:   w,
		minLevel: minLevel,
		now:      time.Now,
	}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(io.Discard, LevelError+1)
}

// Open creates a logger appending to the file at path. The returned
// function closes the file.
func Open(path string, minLevel Level) (*Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: user-supplied log path
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f, minLevel), f.Close, nil
}

// With returns a logger that appends key=value to every line. The
// returned logger shares the writer and lock of l.
func (l *Logger) With(key string, value any) *Logger {
	fields := make([]string, len(l.fields), len(l.fields)+1)
	copy(fields, l.fields)
	fields = append(fields, fmt.Sprintf("%s=%v", key, value))

	return &Logger{
		mu:       l.mu,
		writer:   l.writer,
		minLevel: l.minLevel,
		fields:   fields,
		now:      l.now,
	}
}

// Enabled reports whether lines at level are written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && level >= l.minLevel
}

// Debug logs at debug level.
func (l *Logger) Debug(cat Category, msg string, fields ...any) {
	l.log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func (l *Logger) Info(cat Category, msg string, fields ...any) {
	l.log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func (l *Logger) Warn(cat Category, msg string, fields ...any) {
	l.log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func (l *Logger) Error(cat Category, msg string, fields ...any) {
	l.log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func (l *Logger) ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	l.log(LevelError, cat, msg, fields...)
}

func (l *Logger) log(level Level, cat Category, msg string, fields ...any) {
	if !l.Enabled(level) {
		return
	}

	var sb strings.Builder
	sb.WriteString(l.now().Format("2006-01-02T15:04:05.000"))
	fmt.Fprintf(&sb, " [%s] [%s] %s", level, cat, msg)
	for _, f := range l.fields {
		sb.WriteByte(' ')
		sb.WriteString(f)
	}
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	// Odd field count: the orphan key gets a placeholder.
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[len(fields)-1])
	}
	sb.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, sb.String())
}
