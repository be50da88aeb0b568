package log

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeCapture(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.qlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func readAllFrom(t *testing.T, path string, filter Filter) []Event {
	t.Helper()
	r, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer r.Close()

	var out []Event
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		out = append(out, e)
	}
}

func captureFixture(base time.Time) []Event {
	msg := func(id uint16) *MessageEvent {
		return &MessageEvent{Type: MessageTypeRequest, MessageID: id}
	}
	return []Event{
		{Timestamp: base, ConnectionID: "conn-A", Direction: DirectionOut, Layer: LayerClient, Category: CategoryMessage, Service: "DMS", ClientID: 1, Message: msg(0x0025)},
		{Timestamp: base.Add(time.Second), ConnectionID: "conn-A", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryMessage, Service: "DMS", ClientID: 1, Message: msg(0x0025)},
		{Timestamp: base.Add(2 * time.Second), ConnectionID: "conn-B", Direction: DirectionOut, Layer: LayerClient, Category: CategoryAbort, Service: "NAS", ClientID: 2, Abort: &AbortEvent{TransactionID: 3, AbortTransactionID: 4, Reason: "timeout"}},
		{Timestamp: base.Add(3 * time.Second), ConnectionID: "conn-B", Direction: DirectionIn, Layer: LayerClient, Category: CategoryError, Service: "NAS", ClientID: 2, Error: &ErrorEventData{Layer: LayerClient, Message: "parse failed"}},
		{Timestamp: base.Add(4 * time.Second), ConnectionID: "conn-A", Direction: DirectionOut, Layer: LayerClient, Category: CategoryMessage, Service: "DMS", ClientID: 5, Message: msg(0x0020)},
	}
}

func TestReaderPreservesOrder(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	path := writeCapture(t, captureFixture(base))

	got := readAllFrom(t, path, Filter{})
	if len(got) != 5 {
		t.Fatalf("got %d events, want 5", len(got))
	}
	for i, e := range got {
		if want := base.Add(time.Duration(i) * time.Second); !e.Timestamp.Equal(want) {
			t.Errorf("event %d timestamp = %v, want %v", i, e.Timestamp, want)
		}
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	path := writeCapture(t, captureFixture(base))

	out := DirectionOut
	transport := LayerTransport
	abort := CategoryAbort
	cid := uint8(1)
	msgID := uint16(0x0020)
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"connection", Filter{ConnectionID: "conn-B"}, 2},
		{"direction", Filter{Direction: &out}, 3},
		{"layer", Filter{Layer: &transport}, 1},
		{"category", Filter{Category: &abort}, 1},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"service", Filter{Service: "DMS"}, 3},
		{"client id", Filter{ClientID: &cid}, 2},
		{"message id", Filter{MessageID: &msgID}, 1},
		{"combined", Filter{ConnectionID: "conn-A", Direction: &out, ClientID: &cid}, 1},
		{"no match", Filter{Service: "WDS"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAllFrom(t, path, tt.filter)
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
			for _, e := range got {
				if !tt.filter.Matches(e) {
					t.Errorf("event %+v does not match filter", e)
				}
			}
		})
	}
}

func TestFilterMessageIDSkipsNonMessageEvents(t *testing.T) {
	id := uint16(0)
	f := Filter{MessageID: &id}
	if f.Matches(Event{Category: CategoryAbort, Abort: &AbortEvent{}}) {
		t.Error("message id filter matched an abort event")
	}
}

func TestReaderEmptyCapture(t *testing.T) {
	path := writeCapture(t, nil)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}

func TestReaderTruncatedCapture(t *testing.T) {
	path := writeCapture(t, captureFixture(time.Now())[:1])

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read capture: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-3], 0o644); err != nil {
		t.Fatalf("truncate capture: %v", err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	_, err = r.Next()
	if err == nil || errors.Is(err, io.EOF) {
		t.Errorf("Next() error = %v, want a decode error", err)
	}
}

func TestNewReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.qlog")); err == nil {
		t.Error("expected error for missing capture")
	}
}
