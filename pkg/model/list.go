package model

import "fmt"

// MessageList is the ordered, immutable set of messages of one service.
type MessageList struct {
	messages []Message
}

// NewMessageList validates messages and returns them as a list. Full names
// must be unique per kind, and within a request/response stem at most one
// message may be static.
func NewMessageList(messages ...Message) (*MessageList, error) {
	type key struct {
		kind Kind
		name string
	}
	seen := make(map[key]bool, len(messages))
	staticStems := make(map[string]bool)

	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		k := key{m.Kind, m.FullName}
		if seen[k] {
			return nil, fmt.Errorf("%w: %s %q", ErrDuplicate, m.Kind, m.FullName)
		}
		seen[k] = true

		if m.Static && m.Kind != KindIndication {
			if staticStems[m.FullName] {
				return nil, fmt.Errorf("%w: %q: more than one static object", ErrInvalidMessage, m.FullName)
			}
			staticStems[m.FullName] = true
		}
	}

	cp := make([]Message, len(messages))
	copy(cp, messages)
	return &MessageList{messages: cp}, nil
}

// Len returns the number of messages.
func (l *MessageList) Len() int {
	return len(l.messages)
}

// All returns a copy of the messages in definition order.
func (l *MessageList) All() []Message {
	cp := make([]Message, len(l.messages))
	copy(cp, l.messages)
	return cp
}

// Indications returns the indication messages in definition order.
func (l *MessageList) Indications() []Message {
	var out []Message
	for _, m := range l.messages {
		if m.Kind == KindIndication {
			out = append(out, m)
		}
	}
	return out
}

// HasIndications reports whether at least one indication is defined.
func (l *MessageList) HasIndications() bool {
	for _, m := range l.messages {
		if m.Kind == KindIndication {
			return true
		}
	}
	return false
}

// Methods returns the messages that get a generated call/finish pair:
// everything that is neither an indication nor static.
func (l *MessageList) Methods() []Message {
	var out []Message
	for _, m := range l.messages {
		if m.Kind == KindIndication || m.Static {
			continue
		}
		out = append(out, m)
	}
	return out
}
