package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/freedesktop/libqmi/pkg/log"
)

// maxPayloadDump bounds the hex dump of a payload in view output.
const maxPayloadDump = 64

// RunView prints the events of the capture at path that match filter.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes one event as a header line plus indented details.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	label := "Unknown"
	switch {
	case event.Message != nil:
		label = event.Message.Type.String()
	case event.Abort != nil:
		label = "ABORT"
	case event.Error != nil:
		label = "ERROR"
	}

	fmt.Fprintf(w, "%s [conn:%s] %-3s %s %s", ts, shortenConnID(event.ConnectionID), event.Direction, event.Layer, label)
	if event.Service != "" {
		fmt.Fprintf(w, " %s/%d", event.Service, event.ClientID)
	}
	fmt.Fprintln(w)

	switch {
	case event.Message != nil:
		formatMessageDetails(w, event.Message)
	case event.Abort != nil:
		formatAbortDetails(w, event.Abort)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}
	fmt.Fprintln(w)
}

func shortenConnID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatMessageDetails(w io.Writer, msg *log.MessageEvent) {
	fmt.Fprintf(w, "  Message: 0x%04x", msg.MessageID)
	if msg.Name != "" {
		fmt.Fprintf(w, " (%s)", msg.Name)
	}
	fmt.Fprintln(w)
	if msg.Type != log.MessageTypeIndication {
		fmt.Fprintf(w, "  Transaction: %d\n", msg.TransactionID)
	}
	if msg.VendorID != 0 {
		fmt.Fprintf(w, "  Vendor: 0x%04x\n", msg.VendorID)
	}
	if msg.RoundTrip != nil {
		fmt.Fprintf(w, "  Round trip: %s\n", formatDuration(*msg.RoundTrip))
	}
	if len(msg.Payload) > 0 {
		dump := msg.Payload
		if len(dump) > maxPayloadDump {
			dump = dump[:maxPayloadDump]
		}
		fmt.Fprintf(w, "  Payload: %s", hex.EncodeToString(dump))
		if len(dump) < len(msg.Payload) {
			fmt.Fprintf(w, " (%d of %d bytes)", len(dump), len(msg.Payload))
		}
		fmt.Fprintln(w)
	}
}

func formatAbortDetails(w io.Writer, a *log.AbortEvent) {
	fmt.Fprintf(w, "  Aborting transaction: %d (abort transaction %d)\n", a.TransactionID, a.AbortTransactionID)
	fmt.Fprintf(w, "  Reason: %s\n", a.Reason)
	if a.Result != "" {
		fmt.Fprintf(w, "  Failed: %s\n", a.Result)
	}
}

func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", e.Layer)
	fmt.Fprintf(w, "  Error: %s\n", e.Message)
	if e.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *e.Code)
	}
	if e.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", e.Context)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
}
