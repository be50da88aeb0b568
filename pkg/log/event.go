package log

import "time"

// Event represents a protocol log event captured by the QMI runtime.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the client that produced the event (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Service is the QMI service short name, e.g. "DMS".
	Service string `cbor:"6,keyasint,omitempty"`

	// ClientID is the client id allocated by the device for the service.
	ClientID uint8 `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Message *MessageEvent   `cbor:"10,keyasint,omitempty"`
	Abort   *AbortEvent     `cbor:"11,keyasint,omitempty"`
	Error   *ErrorEventData `cbor:"12,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates a message from the device.
	DirectionIn Direction = 0
	// DirectionOut indicates a message to the device.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerTransport is the reply router in front of the device port.
	LayerTransport Layer = 0
	// LayerClient is the per-service client.
	LayerClient Layer = 1
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerClient:
		return "CLIENT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a request, response or indication.
	CategoryMessage Category = 0
	// CategoryAbort indicates a synthesized abort.
	CategoryAbort Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryAbort:
		return "ABORT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MessageEvent captures one QMI message.
type MessageEvent struct {
	// Type distinguishes request/response/indication.
	Type MessageType `cbor:"1,keyasint"`

	// TransactionID correlates request/response pairs (0 for indications).
	TransactionID uint16 `cbor:"2,keyasint"`

	// MessageID is the wire message id.
	MessageID uint16 `cbor:"3,keyasint"`

	// Name is the message name when known, e.g. "Get IDs".
	Name string `cbor:"4,keyasint,omitempty"`

	// VendorID is set for vendor-specific messages.
	VendorID uint16 `cbor:"5,keyasint,omitempty"`

	// Payload is the raw TLV payload (may be truncated).
	Payload []byte `cbor:"6,keyasint,omitempty"`

	// Size is the full payload size in bytes.
	Size int `cbor:"7,keyasint,omitempty"`

	// RoundTrip is the time from request send to response (response only).
	// Stored as nanoseconds.
	RoundTrip *time.Duration `cbor:"8,keyasint,omitempty"`
}

// MessageType distinguishes request/response/indication.
type MessageType uint8

const (
	// MessageTypeRequest indicates a request message.
	MessageTypeRequest MessageType = 0
	// MessageTypeResponse indicates a response message.
	MessageTypeResponse MessageType = 1
	// MessageTypeIndication indicates an indication message.
	MessageTypeIndication MessageType = 2
)

// String returns the message type name.
func (m MessageType) String() string {
	switch m {
	case MessageTypeRequest:
		return "REQUEST"
	case MessageTypeResponse:
		return "RESPONSE"
	case MessageTypeIndication:
		return "INDICATION"
	default:
		return "UNKNOWN"
	}
}

// AbortEvent captures the abort sent for a timed out or aborted request.
type AbortEvent struct {
	// TransactionID is the transaction being aborted.
	TransactionID uint16 `cbor:"1,keyasint"`

	// AbortTransactionID is the transaction of the abort request itself.
	AbortTransactionID uint16 `cbor:"2,keyasint,omitempty"`

	// Reason is the error that triggered the abort.
	Reason string `cbor:"3,keyasint"`

	// Result is empty on success or the abort's own failure.
	Result string `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the QMI protocol error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
