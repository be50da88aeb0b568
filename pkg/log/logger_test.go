package log

import (
	"testing"
	"time"
)

type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(event Event) {
	r.events = append(r.events, event)
}

func TestNoopLoggerAcceptsEveryPayload(t *testing.T) {
	var logger NoopLogger
	code := 0x0e
	for _, e := range []Event{
		{},
		{Category: CategoryMessage, Message: &MessageEvent{Type: MessageTypeRequest, MessageID: 0x0020}},
		{Category: CategoryAbort, Abort: &AbortEvent{TransactionID: 7, AbortTransactionID: 8, Reason: "timeout"}},
		{Category: CategoryError, Error: &ErrorEventData{Layer: LayerClient, Message: "parse failed", Code: &code}},
	} {
		logger.Log(e)
	}
}

func TestLoggerFunc(t *testing.T) {
	var got []string
	l := LoggerFunc(func(e Event) { got = append(got, e.Service) })
	l.Log(Event{Service: "DMS"})
	l.Log(Event{Service: "WDS"})

	if len(got) != 2 || got[0] != "DMS" || got[1] != "WDS" {
		t.Errorf("got %v, want [DMS WDS]", got)
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return a NoopLogger")
	}
	rec := &recordingLogger{}
	if OrNoop(rec) != Logger(rec) {
		t.Error("OrNoop should return a non-nil logger unchanged")
	}
}

func TestMultiLoggerFansOutInOrder(t *testing.T) {
	var order []int
	first := LoggerFunc(func(Event) { order = append(order, 1) })
	second := LoggerFunc(func(Event) { order = append(order, 2) })
	rec := &recordingLogger{}

	multi := NewMultiLogger(first, second, rec)
	multi.Log(Event{Timestamp: time.Now(), ConnectionID: "conn-1", Service: "NAS", ClientID: 2})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("call order = %v, want [1 2]", order)
	}
	if len(rec.events) != 1 || rec.events[0].Service != "NAS" {
		t.Fatalf("recorded %+v, want one NAS event", rec.events)
	}
}

func TestMultiLoggerSkipsNil(t *testing.T) {
	rec := &recordingLogger{}
	multi := NewMultiLogger(nil, rec, nil)
	if len(multi.loggers) != 1 {
		t.Fatalf("got %d loggers, want 1", len(multi.loggers))
	}
	multi.Log(Event{ClientID: 9})
	if len(rec.events) != 1 {
		t.Errorf("got %d events, want 1", len(rec.events))
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	NewMultiLogger().Log(Event{Timestamp: time.Now()})
}
