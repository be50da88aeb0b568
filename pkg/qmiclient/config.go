package qmiclient

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/freedesktop/libqmi/pkg/log"
)

// DefaultAbortTimeout bounds the best-effort abort request.
const DefaultAbortTimeout = 30 * time.Second

// AbortCodec builds and parses the Abort message of a service.
type AbortCodec struct {
	// MessageID is the wire id of the service's Abort request.
	MessageID uint16

	// Encode returns the Abort input payload for the transaction to abort.
	Encode func(transactionID uint16) ([]byte, error)

	// Decode checks the Abort response payload. Optional.
	Decode func(payload []byte) error
}

// Config configures a Client.
type Config struct {
	// Logger is the optional operational logger. Defaults to slog.Default().
	Logger *slog.Logger

	// ProtocolLogger receives protocol events. Optional.
	ProtocolLogger log.Logger

	// Metrics is optional.
	Metrics *Metrics

	// AbortTimeout bounds abort requests. Zero means DefaultAbortTimeout.
	AbortTimeout time.Duration

	// Abort enables abort-on-timeout for messages declared abortable.
	// Without it abortable messages just fail.
	Abort *AbortCodec
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.AbortTimeout < 0 {
		return fmt.Errorf("%w: negative abort timeout %s", ErrInvalidConfig, c.AbortTimeout)
	}
	if c.Abort != nil && c.Abort.Encode == nil {
		return fmt.Errorf("%w: abort codec without encoder", ErrInvalidConfig)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	c.ProtocolLogger = log.OrNoop(c.ProtocolLogger)
	if c.AbortTimeout == 0 {
		c.AbortTimeout = DefaultAbortTimeout
	}
	return c
}
