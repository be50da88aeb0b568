package commands

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/freedesktop/libqmi/pkg/log"
)

// RunExport writes the events matching filter to w as JSON lines or CSV.
func RunExport(path, format string, filter log.Filter, w io.Writer) error {
	var write func(log.Event) error
	var flush func() error

	switch format {
	case "jsonl":
		enc := json.NewEncoder(w)
		write = func(e log.Event) error { return enc.Encode(e) }
		flush = func() error { return nil }
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		write = func(e log.Event) error { return cw.Write(csvRow(e)) }
		flush = func() error {
			cw.Flush()
			return cw.Error()
		}
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := write(event); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
	}
	return flush()
}

var csvHeader = []string{
	"timestamp", "connection_id", "direction", "layer", "category",
	"service", "client_id", "type", "transaction_id", "message_id", "name",
}

func csvRow(e log.Event) []string {
	row := []string{
		e.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		e.ConnectionID,
		e.Direction.String(),
		e.Layer.String(),
		e.Category.String(),
		e.Service,
		strconv.Itoa(int(e.ClientID)),
		"", "", "", "",
	}
	switch {
	case e.Message != nil:
		row[7] = e.Message.Type.String()
		row[8] = strconv.Itoa(int(e.Message.TransactionID))
		row[9] = fmt.Sprintf("0x%04x", e.Message.MessageID)
		row[10] = e.Message.Name
	case e.Abort != nil:
		row[7] = "abort"
		row[8] = strconv.Itoa(int(e.Abort.TransactionID))
	case e.Error != nil:
		row[7] = "error"
		row[10] = e.Error.Context
	}
	return row
}
