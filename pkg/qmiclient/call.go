package qmiclient

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/freedesktop/libqmi/pkg/log"
)

// OperationState is the state of a call.
type OperationState int32

const (
	// StateCreated - request allocated, not yet submitted.
	StateCreated OperationState = iota

	// StateSent - request submitted to the device.
	StateSent

	// StateCompleted - reply received and parsed.
	StateCompleted

	// StateFailed - the call failed; Finish returns the error.
	StateFailed
)

// String returns the state name.
func (s OperationState) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateSent:
		return "SENT"
	case StateCompleted:
		return "COMPLETED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Codec converts between typed message bundles and TLV payloads.
// Encode is required when the message has input, Decode when it has output.
type Codec[In, Out any] struct {
	Encode func(In) ([]byte, error)
	Decode func([]byte) (Out, error)
}

// Operation is a pending call.
type Operation[Out any] struct {
	tid       uint16
	state     atomic.Int32
	abortSent atomic.Bool
	done      chan struct{}

	out Out
	err error
}

func newOperation[Out any](tid uint16) *Operation[Out] {
	return &Operation[Out]{tid: tid, done: make(chan struct{})}
}

// TransactionID returns the transaction id of the request.
func (o *Operation[Out]) TransactionID() uint16 { return o.tid }

// Done is closed when the operation reaches Completed or Failed.
func (o *Operation[Out]) Done() <-chan struct{} { return o.done }

// State returns the current state.
func (o *Operation[Out]) State() OperationState { return OperationState(o.state.Load()) }

// AbortSent reports whether a best-effort abort was dispatched for this
// call. It is set before the operation fails.
func (o *Operation[Out]) AbortSent() bool { return o.abortSent.Load() }

// Finish blocks until the operation is done and returns its result.
func (o *Operation[Out]) Finish() (Out, error) {
	<-o.done
	return o.out, o.err
}

func (o *Operation[Out]) complete(out Out) {
	o.out = out
	o.state.Store(int32(StateCompleted))
	close(o.done)
}

func (o *Operation[Out]) fail(err error) {
	o.err = err
	o.state.Store(int32(StateFailed))
	close(o.done)
}

// Call submits the request described by spec and returns immediately.
// Input is ignored when spec.HasInput is false. If the request cannot be
// built, or codec cannot decode a declared output, the operation fails with
// ErrBadRequest and nothing is sent.
//
// ctx only controls delivery of the result: a request already written to
// the device is not recalled when ctx is canceled.
func Call[In, Out any](ctx context.Context, c *Client, spec MessageSpec, input In, codec Codec[In, Out], timeout time.Duration) *Operation[Out] {
	op := newOperation[Out](c.NextTransactionID())

	if c.isClosed() {
		op.fail(ErrClosed)
		return op
	}

	if spec.HasOutput && codec.Decode == nil {
		c.cfg.Metrics.observeRequest(c.service, spec.Name, resultBadRequest, 0)
		op.fail(fmt.Errorf("%w: %s: no output decoder", ErrBadRequest, spec.Name))
		return op
	}

	var payload []byte
	if spec.HasInput {
		if codec.Encode == nil {
			c.cfg.Metrics.observeRequest(c.service, spec.Name, resultBadRequest, 0)
			op.fail(fmt.Errorf("%w: %s: no input encoder", ErrBadRequest, spec.Name))
			return op
		}
		p, err := codec.Encode(input)
		if err != nil {
			c.cfg.Metrics.observeRequest(c.service, spec.Name, resultBadRequest, 0)
			op.fail(fmt.Errorf("%w: %s: %w", ErrBadRequest, spec.Name, err))
			return op
		}
		payload = p
	}

	req := &Message{
		Service:       c.service,
		ClientID:      c.cid,
		TransactionID: op.tid,
		MessageID:     spec.ID,
		Payload:       payload,
	}

	op.state.Store(int32(StateSent))
	c.logMessage(log.DirectionOut, log.MessageTypeRequest, req, spec.Name, spec.Vendor, nil)
	go await(ctx, c, op, spec, req, codec.Decode, timeout)
	return op
}

func await[Out any](ctx context.Context, c *Client, op *Operation[Out], spec MessageSpec, req *Message, decode func([]byte) (Out, error), timeout time.Duration) {
	start := time.Now()
	resp, err := c.device.Command(ctx, req, spec.Context(), timeout)
	elapsed := time.Since(start)

	if err != nil {
		c.cfg.Metrics.observeRequest(c.service, spec.Name, resultOf(err), elapsed)
		if spec.Abort && triggersAbort(err) && c.startAbort(op.tid, spec, err) {
			op.abortSent.Store(true)
		}
		op.fail(err)
		return
	}

	c.logMessage(log.DirectionIn, log.MessageTypeResponse, resp, spec.Name, spec.Vendor, &elapsed)

	var out Out
	if spec.HasOutput {
		out, err = decode(resp.Payload)
		if err != nil {
			result := resultParseError
			var perr *ProtocolError
			if errors.As(err, &perr) {
				result = resultProtocolError
			}
			c.cfg.Metrics.observeRequest(c.service, spec.Name, result, elapsed)
			op.fail(fmt.Errorf("%s: parse response: %w", spec.Name, err))
			return
		}
	}
	c.cfg.Metrics.observeRequest(c.service, spec.Name, resultOK, elapsed)
	op.complete(out)
}

// triggersAbort reports whether err is a transport timeout or the
// protocol "aborted" error.
func triggersAbort(err error) bool {
	if errors.Is(err, ErrTimeout) {
		return true
	}
	var perr *ProtocolError
	return errors.As(err, &perr) && perr.Code == ProtocolErrorAborted
}

// startAbort dispatches the abort for transaction tid on its own goroutine.
// It returns false when no abort codec is configured.
func (c *Client) startAbort(tid uint16, spec MessageSpec, cause error) bool {
	if c.cfg.Abort == nil {
		c.logger().Debug("abort not configured",
			"service", c.service, "message", spec.Name, "tid", tid)
		return false
	}
	abortTID := c.NextTransactionID()
	go c.sendAbort(tid, abortTID, spec.Name, cause.Error())
	return true
}

func (c *Client) sendAbort(tid, abortTID uint16, name, reason string) {
	e := c.event(log.DirectionOut, log.CategoryAbort)
	e.Abort = &log.AbortEvent{TransactionID: tid, AbortTransactionID: abortTID, Reason: reason}

	result := resultOK
	if err := c.abortTransaction(tid, abortTID); err != nil {
		c.logger().Debug(fmt.Sprintf("operation to abort '%s' failed", name),
			"service", c.service, "tid", tid, "error", err)
		e.Abort.Result = err.Error()
		result = resultError
	}
	c.cfg.Metrics.observeAbort(c.service, result)
	c.cfg.ProtocolLogger.Log(e)
}

func (c *Client) abortTransaction(tid, abortTID uint16) error {
	codec := c.cfg.Abort
	payload, err := codec.Encode(tid)
	if err != nil {
		return fmt.Errorf("%w: abort: %w", ErrBadRequest, err)
	}
	req := &Message{
		Service:       c.service,
		ClientID:      c.cid,
		TransactionID: abortTID,
		MessageID:     codec.MessageID,
		Payload:       payload,
	}
	resp, err := c.device.Command(context.Background(), req, nil, c.cfg.AbortTimeout)
	if err != nil {
		return err
	}
	if codec.Decode != nil {
		return codec.Decode(resp.Payload)
	}
	return nil
}
