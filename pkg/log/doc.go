// Package log provides structured protocol logging for QMI clients.
//
// This package defines the Logger interface and Event types for capturing
// the requests, responses, indications and aborts exchanged by the runtime
// in pkg/qmiclient. It is separate from operational logging (slog): protocol
// capture provides a complete machine-readable trace for debugging.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For field traces: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/qmi/modem.qlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files use CBOR encoding with the .qlog extension. The qmi-log command
// views, filters and summarizes them.
package log
