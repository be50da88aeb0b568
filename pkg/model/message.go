package model

import "fmt"

// Kind classifies a message.
type Kind uint8

const (
	// KindRequest is a request, answered by a response with the same stem.
	KindRequest Kind = iota
	// KindResponse is the reply half of a request/response pair.
	KindResponse
	// KindIndication is an unsolicited message delivered as an event.
	KindIndication
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "Request"
	case KindResponse:
		return "Response"
	case KindIndication:
		return "Indication"
	default:
		return "Unknown"
	}
}

// Field is one element of a bundle.
type Field struct {
	Name  string
	Since string
}

// Payload is the shape of a bundle: Empty or Fields.
type Payload interface {
	isPayload()
}

// Empty is a bundle without any field on the wire.
type Empty struct{}

// Fields is a bundle with at least one field.
type Fields []Field

func (Empty) isPayload()  {}
func (Fields) isPayload() {}

// Bundle is the input or output payload descriptor of a message.
type Bundle struct {
	// FullName is the bundle's logical name, e.g. "QMI Message DMS Reset Output".
	FullName string

	payload Payload
}

// NewBundle returns a bundle carrying fields, or an Empty bundle when no
// field is given.
func NewBundle(fullName string, fields ...Field) Bundle {
	if len(fields) == 0 {
		return Bundle{FullName: fullName, payload: Empty{}}
	}
	cp := make(Fields, len(fields))
	copy(cp, fields)
	return Bundle{FullName: fullName, payload: cp}
}

// Payload returns the bundle shape. The zero Bundle is Empty.
func (b Bundle) Payload() Payload {
	if b.payload == nil {
		return Empty{}
	}
	return b.payload
}

// HasPayload reports whether the bundle carries fields.
func (b Bundle) HasPayload() bool {
	_, ok := b.Payload().(Fields)
	return ok
}

// Message is one entry of a service's message list.
type Message struct {
	Name     string
	FullName string
	Kind     Kind

	// IDConstant is the symbolic name of the wire message id,
	// e.g. "QMI_MESSAGE_DMS_RESET".
	IDConstant string

	// ID is the numeric wire message id.
	ID uint16

	// Vendor is the vendor id expression for vendor-extended messages.
	// Empty for standard messages.
	Vendor string

	Since string

	// Static messages are implemented by hand and skipped by the generator.
	Static bool

	// Abort enables the abort-on-timeout path. Only meaningful for
	// request/response messages.
	Abort bool

	Input  Bundle
	Output Bundle
}

// HasVendor reports whether the message is vendor-extended.
func (m Message) HasVendor() bool {
	return m.Vendor != ""
}

// Validate checks that the message carries the names generators rely on.
func (m Message) Validate() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidMessage)
	case m.FullName == "":
		return fmt.Errorf("%w: %q: missing full name", ErrInvalidMessage, m.Name)
	case m.IDConstant == "":
		return fmt.Errorf("%w: %q: missing id constant", ErrInvalidMessage, m.Name)
	case m.Kind > KindIndication:
		return fmt.Errorf("%w: %q: unknown kind %d", ErrInvalidMessage, m.Name, m.Kind)
	case m.Output.FullName == "":
		return fmt.Errorf("%w: %q: missing output bundle name", ErrInvalidMessage, m.Name)
	case m.Kind != KindIndication && m.Input.FullName == "":
		return fmt.Errorf("%w: %q: missing input bundle name", ErrInvalidMessage, m.Name)
	}
	return nil
}
