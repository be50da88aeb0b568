package log

// Logger receives protocol events from the QMI runtime.
// Implementations must be safe for concurrent use and should not block.
type Logger interface {
	Log(event Event)
}

// LoggerFunc adapts a plain function to the Logger interface.
type LoggerFunc func(Event)

// Log calls f(event).
func (f LoggerFunc) Log(event Event) { f(event) }

// NoopLogger discards all events. The zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// OrNoop returns l, or a NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

// MultiLogger fans events out to several loggers in order, for example a
// SlogAdapter for the console and a FileLogger for a capture file.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger. Nil loggers are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Log sends the event to every configured logger.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

var (
	_ Logger = NoopLogger{}
	_ Logger = LoggerFunc(nil)
	_ Logger = (*MultiLogger)(nil)
)
