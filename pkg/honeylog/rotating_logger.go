package honeylog

import (
	"sync"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotatingLoggerConfig configures a size/age-rotated CBOR event log.
type RotatingLoggerConfig struct {
	// Path is the log file path. Rotated files are written alongside it
	// with a timestamp suffix, per lumberjack's convention.
	Path string

	// MaxSizeMB is the size in megabytes a log file reaches before rotation.
	MaxSizeMB int

	// MaxBackups is the number of rotated files to retain. 0 keeps all.
	MaxBackups int

	// MaxAgeDays is the maximum age in days to retain a rotated file. 0 disables age-based cleanup.
	MaxAgeDays int

	// Compress gzips rotated files.
	Compress bool
}

// RotatingLogger writes protocol events to a CBOR file that lumberjack
// rotates by size/age, replacing FileLogger's hand-rolled append-only file
// for production deployments where unbounded log growth is unacceptable.
type RotatingLogger struct {
	mu      sync.Mutex
	encoder *cbor.Encoder
	rotator *lumberjack.Logger
}

// NewRotatingLogger creates a RotatingLogger per cfg.
func NewRotatingLogger(cfg RotatingLoggerConfig) *RotatingLogger {
	rotator := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	return &RotatingLogger{
		rotator: rotator,
		encoder: NewEncoder(rotator),
	}
}

// Log writes an event to the rotating log. Safe for concurrent use.
// Encoding/rotation errors are swallowed; logging must not disrupt the
// application it instruments.
func (l *RotatingLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.encoder.Encode(event)
}

// Close flushes and closes the underlying rotated file.
func (l *RotatingLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rotator.Close()
}

// Compile-time interface satisfaction check.
var _ Logger = (*RotatingLogger)(nil)
