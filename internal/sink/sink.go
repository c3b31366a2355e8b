// Package sink provides the thread-safe, line-oriented output channel
// every connection worker writes its description blocks to.
package sink

import (
	"fmt"
	"io"
	"sync"
)

// Sink serialises writes from any number of goroutines so that one
// block never interleaves with another. It is the only required
// synchronisation point shared across all connection workers.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
}

// New wraps w, an arbitrary line-oriented writer (typically os.Stdout).
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Emit writes block atomically with respect to every other Emit call on
// the same Sink, trailed by a newline.
func (s *Sink) Emit(block string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w, block)
	return err
}
