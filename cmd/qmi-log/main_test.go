package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/freedesktop/libqmi/pkg/log"
)

func writeCapture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modem.qlog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(log.Event{
		Timestamp: time.Now(), Direction: log.DirectionOut, Layer: log.LayerClient,
		Category: log.CategoryMessage, Service: "NAS", ClientID: 2,
		Message: &log.MessageEvent{Type: log.MessageTypeRequest, TransactionID: 5, MessageID: 0x0024, Name: "Get Serving System"},
	})
	logger.Log(log.Event{
		Timestamp: time.Now(), Direction: log.DirectionOut, Layer: log.LayerClient,
		Category: log.CategoryAbort, Service: "NAS", ClientID: 2,
		Abort: &log.AbortEvent{TransactionID: 5, AbortTransactionID: 6, Reason: "request timed out"},
	})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func TestRunCommands(t *testing.T) {
	path := writeCapture(t)
	filtered := filepath.Join(t.TempDir(), "aborts.qlog")

	tests := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{"view", "view", []string{"-service", "nas", path}, "REQUEST NAS/2"},
		{"view filtered", "view", []string{"-category", "abort", path}, "Aborting transaction: 5"},
		{"export", "export", []string{"-format", "csv", path}, "Get Serving System"},
		{"filter", "filter", []string{"-category", "abort", "-o", filtered, path}, "Filtered 1 events to " + filtered},
		{"stats", "stats", []string{path}, "Aborts: 1 (0 failed)"},
		{"help", "help", nil, "qmi-log - QMI Protocol Log Analyzer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(tt.cmd, tt.args, &out); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output does not contain %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	path := writeCapture(t)

	tests := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{"unknown command", "replay", nil, "unknown command"},
		{"missing path", "stats", nil, "log file path required"},
		{"filter without output", "filter", []string{path}, "output file (-o) required"},
		{"bad direction", "view", []string{"-direction", "up", path}, "invalid direction"},
		{"bad format", "export", []string{"-format", "xml", path}, "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.cmd, tt.args, &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}
