package serial

import (
	"bytes"
	"io"
	"os"
	"sync"
)

// Loopback is an in-memory Port that reads back what was written to it
type Loopback struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

// NewLoopback returns an open loopback port
func NewLoopback() *Loopback {
	return &Loopback{}
}

// Read returns buffered bytes. With nothing buffered it returns 0, io.EOF
// like a native port whose read timed out.
func (l *Loopback) Read(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, os.ErrClosed
	}
	if l.buf.Len() == 0 {
		return 0, io.EOF
	}
	return l.buf.Read(b)
}

// Write buffers b for a later Read
func (l *Loopback) Write(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, os.ErrClosed
	}
	return l.buf.Write(b)
}

// Close makes further reads and writes fail
func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// Len returns the number of unread bytes
func (l *Loopback) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Len()
}

// Flush discards unread bytes
func (l *Loopback) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.Reset()
	return nil
}

var _ Port = (*Loopback)(nil)
