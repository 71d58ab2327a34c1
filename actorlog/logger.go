// Package actorlog is the runtime's structured logger: leveled,
// field-scoped output in text or JSON, with an optional ring buffer of
// recent entries that the admin surface serves back to an operator, so
// a single node's recent history is inspectable without standing up
// log aggregation.
package actorlog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level orders log severities. Entries below a logger's configured
// level are discarded before they are formatted.
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
	default:
		return "ERROR"
	}
}

// ParseLevel maps a configured log_level string onto a Level. Unknown
// strings fall back to LevelDebug so a misconfigured node logs too
// much rather than too little.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "INFO":
		return LevelInfo
	case "WARN":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelDebug
	}
}

// Entry is one emitted log record, as written to the output and kept
// by a Ring.
type Entry struct {
	Time    time.Time              `json:"time"`
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// Logger is the structured-logging abstraction used throughout the
// runtime. The interface is what actors depend on, not the
// implementation.
type Logger interface {
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	// WithFields returns a new logger that includes fields on every
	// subsequent entry.
	WithFields(fields map[string]interface{}) Logger

	// WithContext extracts well-known context values (actor ID) and
	// folds them into WithFields.
	WithContext(ctx context.Context) Logger
}

// Config configures New.
type Config struct {
	Level  Level
	JSON   bool
	Output io.Writer // defaults to os.Stdout
	Tee    *Ring     // optional: every emitted entry is also kept here
}

type logger struct {
	mu     *sync.Mutex // shared across WithFields clones; one writer per output
	cfg    Config
	fields map[string]interface{}
}

// New builds a Logger per cfg.
func New(cfg Config) Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return &logger{mu: &sync.Mutex{}, cfg: cfg}
}

// NewDefault returns the zero-configuration text logger at LevelDebug.
func NewDefault() Logger {
	return New(Config{})
}

// NewJSON returns a logger emitting one JSON object per line, for log
// shippers.
func NewJSON() Logger {
	return New(Config{JSON: true})
}

func (l *logger) emit(level Level, msg string) {
	if level < l.cfg.Level {
		return
	}

	e := Entry{
		Time:    time.Now().UTC(),
		Level:   level.String(),
		Message: msg,
	}
	if len(l.fields) > 0 {
		e.Fields = l.fields
	}
	if l.cfg.Tee != nil {
		l.cfg.Tee.add(e)
	}

	var line []byte
	if l.cfg.JSON {
		var err error
		if line, err = json.Marshal(e); err != nil {
			line = []byte(fmt.Sprintf(`{"time":%q,"level":%q,"message":%q}`,
				e.Time.Format(time.RFC3339), e.Level, e.Message))
		}
	} else {
		line = []byte(e.Time.Format(time.RFC3339) + " [" + e.Level + "] " + msg + formatFields(l.fields))
	}

	l.mu.Lock()
	_, _ = l.cfg.Output.Write(append(line, '\n'))
	l.mu.Unlock()
}

// formatFields renders fields as " k=v" pairs in key order, so two
// entries with the same fields always read the same.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

func (l *logger) Error(args ...interface{}) { l.emit(LevelError, fmt.Sprint(args...)) }
func (l *logger) Errorf(format string, args ...interface{}) {
	l.emit(LevelError, fmt.Sprintf(format, args...))
}
func (l *logger) Warn(args ...interface{}) { l.emit(LevelWarn, fmt.Sprint(args...)) }
func (l *logger) Warnf(format string, args ...interface{}) {
	l.emit(LevelWarn, fmt.Sprintf(format, args...))
}
func (l *logger) Info(args ...interface{}) { l.emit(LevelInfo, fmt.Sprint(args...)) }
func (l *logger) Infof(format string, args ...interface{}) {
	l.emit(LevelInfo, fmt.Sprintf(format, args...))
}
func (l *logger) Debug(args ...interface{}) { l.emit(LevelDebug, fmt.Sprint(args...)) }
func (l *logger) Debugf(format string, args ...interface{}) {
	l.emit(LevelDebug, fmt.Sprintf(format, args...))
}

func (l *logger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &logger{mu: l.mu, cfg: l.cfg, fields: merged}
}

func (l *logger) WithContext(ctx context.Context) Logger {
	if id := GetActorID(ctx); id != "" {
		return l.WithFields(map[string]interface{}{"actor_id": id})
	}
	return l
}
