package qmiclient

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/freedesktop/libqmi/pkg/log"
)

// Client is bound to one service and one client id on a Device.
type Client struct {
	device  Device
	service string
	cid     uint8
	connID  string
	cfg     Config

	// lastTID holds the last transaction id handed out.
	lastTID atomic.Uint32

	mu       sync.RWMutex
	handlers map[uint16][]indicationHandler
	nextSub  uint64
	closed   bool
}

// NewClient creates a client for service using the already allocated
// client id cid.
func NewClient(device Device, service string, cid uint8, cfg Config) (*Client, error) {
	if device == nil {
		return nil, fmt.Errorf("%w: nil device", ErrInvalidConfig)
	}
	if service == "" {
		return nil, fmt.Errorf("%w: missing service", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		device:   device,
		service:  service,
		cid:      cid,
		connID:   uuid.NewString(),
		cfg:      cfg.withDefaults(),
		handlers: make(map[uint16][]indicationHandler),
	}, nil
}

// Service returns the service short name, e.g. "DMS".
func (c *Client) Service() string { return c.service }

// CID returns the client id.
func (c *Client) CID() uint8 { return c.cid }

// ConnectionID identifies this client in protocol logs.
func (c *Client) ConnectionID() string { return c.connID }

// NextTransactionID returns a fresh transaction id. Ids are 16 bit, never
// zero, and unique among the last 65535 ids handed out, also under
// concurrent callers.
func (c *Client) NextTransactionID() uint16 {
	for {
		last := c.lastTID.Load()
		next := uint16(last) + 1
		if next == 0 {
			next = 1
		}
		if c.lastTID.CompareAndSwap(last, uint32(next)) {
			return next
		}
	}
}

// Close stops indication delivery and fails new calls with ErrClosed.
// Calls already in flight complete normally.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.handlers = make(map[uint16][]indicationHandler)
	return nil
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Client) logger() *slog.Logger { return c.cfg.Logger }

func (c *Client) event(dir log.Direction, cat log.Category) log.Event {
	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.connID,
		Direction:    dir,
		Layer:        log.LayerClient,
		Category:     cat,
		Service:      c.service,
		ClientID:     c.cid,
	}
}

func (c *Client) logMessage(dir log.Direction, typ log.MessageType, msg *Message, name string, vendor uint16, rtt *time.Duration) {
	e := c.event(dir, log.CategoryMessage)
	e.Message = &log.MessageEvent{
		Type:          typ,
		TransactionID: msg.TransactionID,
		MessageID:     msg.MessageID,
		Name:          name,
		VendorID:      vendor,
		Payload:       msg.Payload,
		Size:          len(msg.Payload),
		RoundTrip:     rtt,
	}
	c.cfg.ProtocolLogger.Log(e)
}

func (c *Client) logError(msg, context string) {
	e := c.event(log.DirectionIn, log.CategoryError)
	e.Error = &log.ErrorEventData{Layer: log.LayerClient, Message: msg, Context: context}
	c.cfg.ProtocolLogger.Log(e)
}
