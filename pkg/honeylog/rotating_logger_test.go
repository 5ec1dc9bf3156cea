package honeylog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRotatingLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.mlog")

	logger := NewRotatingLogger(RotatingLoggerConfig{Path: path, MaxSizeMB: 1})
	defer logger.Close()

	logger.Log(Event{Timestamp: time.Now(), ConnectionID: "conn-1", Layer: LayerTransport, Category: CategoryMessage})

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestRotatingLoggerWritesCBOR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.mlog")

	logger := NewRotatingLogger(RotatingLoggerConfig{Path: path, MaxSizeMB: 1})

	event := Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-123",
		Direction:    DirectionIn,
		Layer:        LayerTransport,
		Category:     CategoryMessage,
	}
	logger.Log(event)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if decoded.ConnectionID != event.ConnectionID {
		t.Errorf("ConnectionID = %q, want %q", decoded.ConnectionID, event.ConnectionID)
	}
}

// Repeats, for the value NewRotatingLogger returns, the compile-time
// interface satisfaction check already asserted in rotating_logger.go.
func TestRotatingLogger_SatisfiesLoggerInterface(t *testing.T) {
	var _ Logger = NewRotatingLogger(RotatingLoggerConfig{Path: filepath.Join(t.TempDir(), "x.mlog")})
}
