// Package log is the category-based debug logger.
// Output is off unless --debug or BALLOONSIM_DEBUG turns it on.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a case-insensitive level name to a Level
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelDebug, fmt.Errorf("unknown log level %q", s)
}

// Category groups related log messages
type Category string

const (
	CatSim     Category = "sim"     // cluster lifecycle, layout capture, scroll impulses
	CatChoreo  Category = "choreo"  // focus and neighbour choreography
	CatAmbient Category = "ambient" // idle floats, pointer parallax
	CatConfig  Category = "config"  // configuration loading and presets
	CatWatcher Category = "watcher" // config file watcher
	CatHost    Category = "host"    // window host, input, rendering
	CatTrace   Category = "trace"   // tracer provider
)

// Logger writes leveled key=value lines
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	w        io.Writer
	enabled  bool
	minLevel Level
	now      func() time.Time
}

var (
	stdMu sync.RWMutex
	std   *Logger
)

// Init opens path for appending and makes it the destination of the package
// level functions. The returned func closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // user supplied debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l := New(f)
	l.file = f
	setDefault(l)
	return func() {
		setDefault(nil)
		_ = f.Close()
	}, nil
}

// InitWriter routes the package level functions to w
func InitWriter(w io.Writer) {
	setDefault(New(w))
}

// New creates an enabled logger writing to w
func New(w io.Writer) *Logger {
	return &Logger{
		w:        w,
		enabled:  true,
		minLevel: LevelDebug,
		now:      time.Now,
	}
}

func setDefault(l *Logger) {
	stdMu.Lock()
	std = l
	stdMu.Unlock()
}

func current() *Logger {
	stdMu.RLock()
	defer stdMu.RUnlock()
	return std
}

// SetEnabled toggles logging on/off
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops messages below level
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level
func Debug(cat Category, msg string, fields ...any) {
	current().Log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level
func Info(cat Category, msg string, fields ...any) {
	current().Log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level
func Warn(cat Category, msg string, fields ...any) {
	current().Log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level
func Error(cat Category, msg string, fields ...any) {
	current().Log(LevelError, cat, msg, fields...)
}

// ErrorErr logs err alongside msg
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	errText := "<nil>"
	if err != nil {
		errText = err.Error()
	}
	current().Log(LevelError, cat, msg, append(fields, "error", errText)...)
}

// Log formats one line as
//
//	2006-01-02T15:04:05 [LEVEL] [category] message key=value key2=value2
//
// A nil logger discards everything.
func (l *Logger) Log(level Level, cat Category, msg string, fields ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel || l.w == nil {
		return
	}

	var b strings.Builder
	b.WriteString(l.now().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(l.w, b.String())
}
