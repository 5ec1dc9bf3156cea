// Package honeylog provides structured protocol logging for HoneyLink.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at multiple layers (transport, wire, service).
// It is separate from operational logging (slog) - protocol capture provides
// a complete machine-readable event trace for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	var logger honeylog.Logger
//
//	// For development: log to console via slog
//	logger = honeylog.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	fileLogger, err := honeylog.NewFileLogger("/var/log/honeylink/device.mlog")
//	if err != nil {
//	    return err
//	}
//	logger = fileLogger
//
//	// Both: use MultiLogger
//	logger = honeylog.NewMultiLogger(
//	    honeylog.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: Raw frame bytes (FrameEvent)
//   - Wire: Decoded messages (MessageEvent)
//   - Service: State changes (StateChangeEvent)
//
// Control messages (ping/pong/close) and errors have dedicated event types.
//
// # File Format
//
// Log files use CBOR encoding with .mlog extension. A Reader (NewReader, or
// NewFilteredReader with a Filter) reads a log file back.
package honeylog
