package qmiclient

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

type pendingKey struct {
	service string
	cid     uint8
	tid     uint16
}

type clientKey struct {
	service string
	cid     uint8
}

// Router is a Device on top of a Sender. Replies fed to HandleMessage are
// matched to pending commands by service, client id and transaction id;
// indications are forwarded to the attached clients.
type Router struct {
	sender Sender
	logger *slog.Logger

	mu      sync.Mutex
	pending map[pendingKey]chan *Message
	clients map[clientKey]*Client
	closed  bool
}

// NewRouter creates a router writing requests to sender.
func NewRouter(sender Sender, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		sender:  sender,
		logger:  logger,
		pending: make(map[pendingKey]chan *Message),
		clients: make(map[clientKey]*Client),
	}
}

// Attach routes indications addressed to c's service and client id to c.
func (r *Router) Attach(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[clientKey{c.service, c.cid}] = c
}

// Detach stops routing indications to c.
func (r *Router) Detach(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients[clientKey{c.service, c.cid}] == c {
		delete(r.clients, clientKey{c.service, c.cid})
	}
}

// Command sends req and waits for the reply with the same transaction id.
// A timeout of zero waits until ctx is done.
func (r *Router) Command(ctx context.Context, req *Message, mctx *MessageContext, timeout time.Duration) (*Message, error) {
	key := pendingKey{req.Service, req.ClientID, req.TransactionID}
	replyCh := make(chan *Message, 1)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrClosed
	}
	if _, busy := r.pending[key]; busy {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: transaction %d already pending", ErrBadRequest, req.TransactionID)
	}
	r.pending[key] = replyCh
	r.mu.Unlock()

	defer r.forget(key, replyCh)

	if err := r.sender.Send(ctx, req, mctx); err != nil {
		return nil, err
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-expired:
		return nil, ErrTimeout
	case reply, ok := <-replyCh:
		if !ok {
			return nil, ErrClosed
		}
		return reply, nil
	}
}

func (r *Router) forget(key pendingKey, ch chan *Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending[key] == ch {
		delete(r.pending, key)
	}
}

// HandleMessage delivers a message read from the transport. Replies nobody
// waits for return ErrUnexpectedReply. Indications are processed
// synchronously so delivery order is kept. After Close every message is
// rejected with ErrClosed.
func (r *Router) HandleMessage(msg *Message) error {
	if msg.Indication {
		return r.dispatch(msg)
	}

	key := pendingKey{msg.Service, msg.ClientID, msg.TransactionID}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	ch, ok := r.pending[key]
	if ok {
		delete(r.pending, key)
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s client %d transaction %d", ErrUnexpectedReply, msg.Service, msg.ClientID, msg.TransactionID)
	}
	ch <- msg
	return nil
}

func (r *Router) dispatch(msg *Message) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	var targets []*Client
	if msg.ClientID == BroadcastClientID {
		for key, c := range r.clients {
			if key.service == msg.Service {
				targets = append(targets, c)
			}
		}
		slices.SortFunc(targets, func(a, b *Client) int { return cmp.Compare(a.cid, b.cid) })
	} else if c, ok := r.clients[clientKey{msg.Service, msg.ClientID}]; ok {
		targets = append(targets, c)
	}
	r.mu.Unlock()

	if len(targets) == 0 {
		r.logger.Debug("indication for unknown client",
			"service", msg.Service, "cid", msg.ClientID, "msg_id", msg.MessageID)
		return nil
	}
	for _, c := range targets {
		c.ProcessIndication(msg)
	}
	return nil
}

// Close fails pending commands with ErrClosed and stops indication
// delivery.
func (r *Router) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for _, ch := range r.pending {
		close(ch)
	}
	r.pending = make(map[pendingKey]chan *Message)
	return nil
}

var _ Device = (*Router)(nil)
