// Package commands implements the qmi-log CLI commands.
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/freedesktop/libqmi/pkg/log"
)

// FilterOptions holds the textual filter flags shared by view, export and
// filter. Empty fields match every event.
type FilterOptions struct {
	ConnID    string
	Service   string
	ClientID  string
	MessageID string
	TimeStart string
	TimeEnd   string
	Layer     string
	Direction string
	Category  string
}

// Build converts the options into a log.Filter.
func (o FilterOptions) Build() (log.Filter, error) {
	filter := log.Filter{
		ConnectionID: o.ConnID,
		Service:      strings.ToUpper(o.Service),
	}

	if o.ClientID != "" {
		v, err := strconv.ParseUint(o.ClientID, 0, 8)
		if err != nil {
			return filter, fmt.Errorf("invalid client id %q: %w", o.ClientID, err)
		}
		cid := uint8(v)
		filter.ClientID = &cid
	}
	if o.MessageID != "" {
		v, err := strconv.ParseUint(o.MessageID, 0, 16)
		if err != nil {
			return filter, fmt.Errorf("invalid message id %q: %w", o.MessageID, err)
		}
		id := uint16(v)
		filter.MessageID = &id
	}
	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	if o.Layer != "" {
		l, err := ParseLayerFlag(o.Layer)
		if err != nil {
			return filter, err
		}
		filter.Layer = &l
	}
	if o.Direction != "" {
		d, err := ParseDirectionFlag(o.Direction)
		if err != nil {
			return filter, err
		}
		filter.Direction = &d
	}
	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	return filter, nil
}

// ParseLayerFlag parses "transport" or "client".
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "client":
		return log.LayerClient, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (valid: transport, client)", s)
	}
}

// ParseDirectionFlag parses "in" or "out".
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (valid: in, out)", s)
	}
}

// ParseCategoryFlag parses "message", "abort" or "error".
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "abort":
		return log.CategoryAbort, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (valid: message, abort, error)", s)
	}
}
