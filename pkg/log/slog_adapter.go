package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see QMI traffic in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Service != "" {
		attrs = append(attrs, slog.String("service", event.Service))
	}
	if event.ClientID != 0 {
		attrs = append(attrs, slog.Uint64("cid", uint64(event.ClientID)))
	}

	switch {
	case event.Message != nil:
		attrs = append(attrs,
			slog.String("msg_type", event.Message.Type.String()),
			slog.Uint64("tid", uint64(event.Message.TransactionID)),
			slog.String("msg_id", hex16(event.Message.MessageID)),
		)
		if event.Message.Name != "" {
			attrs = append(attrs, slog.String("name", event.Message.Name))
		}
		if event.Message.VendorID != 0 {
			attrs = append(attrs, slog.String("vendor", hex16(event.Message.VendorID)))
		}
		if event.Message.RoundTrip != nil {
			attrs = append(attrs, slog.Duration("round_trip", *event.Message.RoundTrip))
		}
	case event.Abort != nil:
		attrs = append(attrs,
			slog.Uint64("tid", uint64(event.Abort.TransactionID)),
			slog.Uint64("abort_tid", uint64(event.Abort.AbortTransactionID)),
			slog.String("reason", event.Abort.Reason),
		)
		if event.Abort.Result != "" {
			attrs = append(attrs, slog.String("result", event.Abort.Result))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", *event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "qmi", attrs...)
}

func hex16(v uint16) string {
	return fmt.Sprintf("0x%04x", v)
}

var _ Logger = (*SlogAdapter)(nil)
