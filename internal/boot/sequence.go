// Package boot plays the fixed intro lines of a terminal session. A
// Sequence is a small state machine; the caller owns the clock, either a
// Bubble Tea tick (see the tui package) or Run for headless use.
package boot

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultDelay separates consecutive boot lines.
const DefaultDelay = time.Second

// State is the lifecycle position of a Sequence.
type State int

const (
	Idle State = iota
	Playing
	Done
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

var generation atomic.Uint64

// Sequence emits lines in order, once.
type Sequence struct {
	id    uint64
	lines []string
	delay time.Duration

	mu    sync.Mutex
	state State
	next  int
}

// New creates an idle sequence over a copy of lines.
func New(lines []string, delay time.Duration) *Sequence {
	return &Sequence{
		id:    generation.Add(1),
		lines: append([]string(nil), lines...),
		delay: delay,
	}
}

// ID distinguishes this sequence from every other one in the process, so
// ticks scheduled for a disposed sequence can be recognised and dropped.
func (s *Sequence) ID() uint64 { return s.id }

// Delay returns the pause between lines.
func (s *Sequence) Delay() time.Duration { return s.delay }

// Len returns the number of lines.
func (s *Sequence) Len() int { return len(s.lines) }

// State returns the current state.
func (s *Sequence) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start moves Idle to Playing. It reports false on every later call, which
// keeps a doubled setup from scheduling the lines twice. An empty sequence
// goes straight to Done.
func (s *Sequence) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle {
		return false
	}
	s.state = Playing
	if len(s.lines) == 0 {
		s.state = Done
	}
	return true
}

// Next returns the next line while Playing. The sequence becomes Done as
// soon as the last line has been handed out.
func (s *Sequence) Next() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Playing || s.next >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.next]
	s.next++
	if s.next == len(s.lines) {
		s.state = Done
	}
	return line, true
}

// Cancel stops a sequence that has not finished. It is safe to call at any
// time and any number of times.
func (s *Sequence) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Idle || s.state == Playing {
		s.state = Cancelled
	}
}

// Run starts the sequence and calls emit for each line, the first one
// immediately and the rest after Delay. It returns nil once every line was
// emitted, or ctx.Err() if ctx ends first; the sequence is then cancelled.
func (s *Sequence) Run(ctx context.Context, emit func(string)) error {
	if !s.Start() {
		return nil
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Cancel()
			return ctx.Err()
		case <-timer.C:
		}

		line, ok := s.Next()
		if !ok {
			return nil
		}
		emit(line)
		if s.State() == Done {
			return nil
		}
		timer.Reset(s.delay)
	}
}
