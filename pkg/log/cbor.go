package log

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Events are written with canonical key order and RFC 3339 timestamps at
// nanosecond precision so that two captures of the same exchange compare
// byte for byte.
var (
	eventEncMode = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	})
	eventDecMode = mustDecMode(cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	m, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("log: cbor encoder mode: %v", err))
	}
	return m
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	m, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("log: cbor decoder mode: %v", err))
	}
	return m
}

// EncodeEvent encodes a single event.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEncMode.Marshal(event)
}

// DecodeEvent decodes a single event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewEncoder returns a stream encoder writing events to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return eventEncMode.NewEncoder(w)
}

// NewDecoder returns a stream decoder reading events from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return eventDecMode.NewDecoder(r)
}

// ReadAll decodes every event in r that matches filter.
func ReadAll(r io.Reader, filter Filter) ([]Event, error) {
	dec := NewDecoder(r)
	var events []Event
	for {
		var event Event
		if err := dec.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return events, err
		}
		if filter.Matches(event) {
			events = append(events, event)
		}
	}
}
