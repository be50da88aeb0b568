package qmiclient

import (
	"errors"
	"slices"

	"github.com/freedesktop/libqmi/pkg/log"
)

var errNoDecoder = errors.New("no indication decoder")

type indicationHandler struct {
	sub    uint64
	spec   IndicationSpec
	handle func(*Message) error
}

// OnIndication registers fn for the indication described by spec. Each
// delivery is parsed with decode; when parsing fails fn is not called.
// The returned function removes the registration.
func OnIndication[Out any](c *Client, spec IndicationSpec, decode func([]byte) (Out, error), fn func(Out)) func() {
	return c.subscribe(spec, func(msg *Message) error {
		if decode == nil {
			return errNoDecoder
		}
		out, err := decode(msg.Payload)
		if err != nil {
			return err
		}
		fn(out)
		return nil
	})
}

// OnEmptyIndication registers fn for an indication without payload.
func OnEmptyIndication(c *Client, spec IndicationSpec, fn func()) func() {
	return c.subscribe(spec, func(*Message) error {
		fn()
		return nil
	})
}

func (c *Client) subscribe(spec IndicationSpec, handle func(*Message) error) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return func() {}
	}
	c.nextSub++
	sub := c.nextSub
	c.handlers[spec.ID] = append(c.handlers[spec.ID], indicationHandler{sub: sub, spec: spec, handle: handle})
	return func() { c.unsubscribe(spec.ID, sub) }
}

func (c *Client) unsubscribe(id uint16, sub uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[id] = slices.DeleteFunc(c.handlers[id], func(h indicationHandler) bool {
		return h.sub == sub
	})
	if len(c.handlers[id]) == 0 {
		delete(c.handlers, id)
	}
}

// ProcessIndication dispatches an indication to the handlers registered for
// its message id, in registration order, on the calling goroutine.
// Indications nobody registered for are ignored. A handler whose payload
// fails to parse is skipped after logging.
func (c *Client) ProcessIndication(msg *Message) {
	c.mu.RLock()
	handlers := slices.Clone(c.handlers[msg.MessageID])
	c.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	c.logMessage(log.DirectionIn, log.MessageTypeIndication, msg, handlers[0].spec.Name, 0, nil)

	for _, h := range handlers {
		if err := h.handle(msg); err != nil {
			c.logger().Warn("couldn't parse indication",
				"service", c.service, "indication", h.spec.Name, "error", err)
			c.logError(err.Error(), h.spec.Name)
			c.cfg.Metrics.observeIndication(c.service, h.spec.Name, resultParseError)
			continue
		}
		c.cfg.Metrics.observeIndication(c.service, h.spec.Name, resultOK)
	}
}
