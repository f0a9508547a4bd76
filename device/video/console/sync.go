package console

import (
	"context"
	"fbcon/device/video/console/font"
	"fbcon/kernel/sync"
	"time"
)

// Synchronized serializes access to a Console so that a single producer and a
// periodic presenter (e.g. a timer tick handler) can share it. Every method
// holds the lock for the duration of the call.
type Synchronized struct {
	lock sync.Spinlock
	cons *Console
}

// NewSynchronized wraps cons.
func NewSynchronized(cons *Console) *Synchronized {
	return &Synchronized{cons: cons}
}

// Do invokes fn with exclusive access to the wrapped console. fn must not
// retain the console after it returns.
func (s *Synchronized) Do(fn func(*Console)) {
	s.lock.Acquire()
	defer s.lock.Release()
	fn(s.cons)
}

// Write implements io.Writer.
func (s *Synchronized) Write(data []byte) (int, error) {
	s.lock.Acquire()
	defer s.lock.Release()
	return s.cons.Write(data)
}

// WriteString writes the contents of str to the console.
func (s *Synchronized) WriteString(str string) (int, error) {
	s.lock.Acquire()
	defer s.lock.Release()
	return s.cons.WriteString(str)
}

// DrawChar renders a single character.
func (s *Synchronized) DrawChar(ch rune) {
	s.lock.Acquire()
	defer s.lock.Release()
	s.cons.DrawChar(ch)
}

// Clear fills the console with c.
func (s *Synchronized) Clear(c Color) {
	s.lock.Acquire()
	defer s.lock.Release()
	s.cons.Clear(c)
}

// SetFont selects the font used by the console.
func (s *Synchronized) SetFont(f *font.Font) {
	s.lock.Acquire()
	defer s.lock.Release()
	s.cons.SetFont(f)
}

// Dimensions returns the console width and height in the specified dimension.
func (s *Synchronized) Dimensions(dim Dimension) (uint32, uint32) {
	s.lock.Acquire()
	defer s.lock.Release()
	return s.cons.Dimensions(dim)
}

// Colors returns the console foreground and background colors.
func (s *Synchronized) Colors() (fg, bg Color) {
	s.lock.Acquire()
	defer s.lock.Release()
	return s.cons.Colors()
}

// Present blocks until the lock is available and presents any pending
// changes.
func (s *Synchronized) Present() bool {
	s.lock.Acquire()
	defer s.lock.Release()
	return s.cons.Present()
}

// TryPresent presents pending changes only if no other caller is currently
// using the console. It never blocks and returns true if a copy took place.
func (s *Synchronized) TryPresent() bool {
	if !s.lock.TryToAcquire() {
		return false
	}

	defer s.lock.Release()
	return s.cons.Present()
}

// Run invokes TryPresent each time a value is received from ticks. When ctx
// is done Run performs a final blocking Present and returns the context
// error. Run also returns if ticks is closed.
func (s *Synchronized) Run(ctx context.Context, ticks <-chan time.Time) error {
	defer s.Present()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			s.TryPresent()
		}
	}
}
