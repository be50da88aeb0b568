package log

import (
	"fmt"
	"os"
	"sync"
)

// FileLogger appends events to a .qlog capture file as a CBOR stream.
// It is safe for concurrent use.
type FileLogger struct {
	path string

	mu      sync.Mutex
	file    *os.File
	enc     interface{ Encode(any) error }
	written int
	err     error
	closed  bool
}

// NewFileLogger opens path for appending, creating it with mode 0644.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open capture %s: %w", path, err)
	}
	return &FileLogger{path: path, file: f, enc: NewEncoder(f)}, nil
}

// Path returns the capture file path.
func (l *FileLogger) Path() string { return l.path }

// Log appends the event. Encoding failures never reach the caller; the
// first one is kept and reported by Err. Events logged after Close are dropped.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err := l.enc.Encode(event); err != nil {
		if l.err == nil {
			l.err = err
		}
		return
	}
	l.written++
}

// Written returns the number of events successfully encoded.
func (l *FileLogger) Written() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written
}

// Err returns the first encoding error, if any.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close closes the capture file. Subsequent calls return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)
