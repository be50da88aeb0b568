package qmiclient

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client errors.
var (
	ErrTimeout         = errors.New("request timed out")
	ErrClosed          = errors.New("client is closed")
	ErrBadRequest      = errors.New("bad request")
	ErrUnexpectedReply = errors.New("unexpected reply")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// ProtocolErrorAborted is the QMI protocol error code reported when the
// modem aborted a request.
const ProtocolErrorAborted uint16 = 0x000e

// ProtocolError is a QMI result TLV error returned by the modem.
type ProtocolError struct {
	Code uint16
}

func (e *ProtocolError) Error() string {
	if e.Code == ProtocolErrorAborted {
		return "protocol error: aborted"
	}
	return fmt.Sprintf("protocol error 0x%04x", e.Code)
}

// BroadcastClientID addresses indications to every client of a service.
const BroadcastClientID uint8 = 0xff

// Message is one QMI service message as exchanged with a device.
type Message struct {
	Service       string
	ClientID      uint8
	TransactionID uint16
	MessageID     uint16
	Indication    bool
	Payload       []byte
}

// MessageContext carries vendor framing for vendor-specific messages.
type MessageContext struct {
	VendorID uint16
}

// Device submits requests and returns the matching reply.
// Command returns ErrTimeout when no reply arrives within timeout.
type Device interface {
	Command(ctx context.Context, req *Message, mctx *MessageContext, timeout time.Duration) (*Message, error)
}

// Sender writes a message to the transport without waiting for a reply.
type Sender interface {
	Send(ctx context.Context, msg *Message, mctx *MessageContext) error
}

// MessageSpec describes one request/response message of a service.
type MessageSpec struct {
	Name      string
	ID        uint16
	Vendor    uint16
	HasVendor bool
	Abort     bool
	HasInput  bool
	HasOutput bool
	Since     string
}

// Context returns the vendor context of the message, or nil when the
// message is not vendor specific.
func (s MessageSpec) Context() *MessageContext {
	if !s.HasVendor {
		return nil
	}
	return &MessageContext{VendorID: s.Vendor}
}

// IndicationSpec describes one indication of a service.
type IndicationSpec struct {
	Name      string
	Signal    string
	ID        uint16
	HasOutput bool
	Since     string
}

// ServiceSpec is the generated registry of a client binding.
type ServiceSpec struct {
	Service     string
	Client      string
	Since       string
	Messages    []MessageSpec
	Indications []IndicationSpec
}

// Message returns the request spec named name.
func (s *ServiceSpec) Message(name string) (MessageSpec, bool) {
	for _, m := range s.Messages {
		if m.Name == name {
			return m, true
		}
	}
	return MessageSpec{}, false
}

// Indication returns the indication spec with the given wire id.
func (s *ServiceSpec) Indication(id uint16) (IndicationSpec, bool) {
	for _, ind := range s.Indications {
		if ind.ID == id {
			return ind, true
		}
	}
	return IndicationSpec{}, false
}
