package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerWritesReadableCapture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modem.qlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if logger.Path() != path {
		t.Errorf("Path() = %q, want %q", logger.Path(), path)
	}

	ts := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	logger.Log(Event{
		Timestamp:    ts,
		ConnectionID: "conn-1",
		Direction:    DirectionIn,
		Layer:        LayerTransport,
		Category:     CategoryMessage,
		Service:      "WDS",
		ClientID:     4,
		Message: &MessageEvent{
			Type:      MessageTypeIndication,
			MessageID: 0x0022,
			Name:      "Packet Service Status",
			Payload:   []byte{1, 2, 3},
			Size:      3,
		},
	})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if logger.Written() != 1 {
		t.Errorf("Written() = %d, want 1", logger.Written())
	}
	if logger.Err() != nil {
		t.Errorf("Err() = %v, want nil", logger.Err())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read capture: %v", err)
	}
	events, err := ReadAll(bytes.NewReader(data), Filter{})
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	got := events[0]
	if !got.Timestamp.Equal(ts) || got.Service != "WDS" || got.ClientID != 4 {
		t.Errorf("header fields = %v/%q/%d", got.Timestamp, got.Service, got.ClientID)
	}
	if got.Message == nil {
		t.Fatal("message payload lost")
	}
	if got.Message.Name != "Packet Service Status" || !bytes.Equal(got.Message.Payload, []byte{1, 2, 3}) {
		t.Errorf("message = %+v", got.Message)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modem.qlog")

	for _, conn := range []string{"conn-1", "conn-2"} {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), ConnectionID: conn, Layer: LayerClient})
		logger.Close()
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer f.Close()

	events, err := ReadAll(f, Filter{})
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].ConnectionID != "conn-1" || events[1].ConnectionID != "conn-2" {
		t.Errorf("order = %q, %q", events[0].ConnectionID, events[1].ConnectionID)
	}
}

func TestFileLoggerConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modem.qlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func(cid uint8) {
			defer wg.Done()
			for range perWriter {
				logger.Log(Event{Timestamp: time.Now(), Service: "DMS", ClientID: cid})
			}
		}(uint8(i + 1))
	}
	wg.Wait()
	logger.Close()

	if logger.Written() != writers*perWriter {
		t.Errorf("Written() = %d, want %d", logger.Written(), writers*perWriter)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer f.Close()

	events, err := ReadAll(f, Filter{})
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != writers*perWriter {
		t.Errorf("decoded %d events, want %d", len(events), writers*perWriter)
	}
}

func TestFileLoggerClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modem.qlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{Timestamp: time.Now()})

	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	logger.Log(Event{Timestamp: time.Now()})
	if logger.Written() != 1 {
		t.Errorf("Written() = %d after close, want 1", logger.Written())
	}
}

func TestNewFileLoggerBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "modem.qlog")
	_, err := NewFileLogger(path)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !strings.Contains(err.Error(), "open capture") {
		t.Errorf("error %q should name the capture", err)
	}
}
