// Package clock provides the time source used for report timestamps and deltas.
//
// A Clock is passed to whatever needs the current time instead of being read
// from a global, so each test can own its own Stub.
package clock

import (
	"time"

	bclock "github.com/benbjohnson/clock"
)

// Clock returns the current time as unix milliseconds.
type Clock interface {
	Now() int64
}

// Real reads the wall clock.
type Real struct{}

func (Real) Now() int64 {
	return time.Now().UnixMilli()
}

// Default is the clock used when none is injected.
var Default Clock = Real{}

// OrDefault returns c, or Default when c is nil.
func OrDefault(c Clock) Clock {
	if c == nil {
		return Default
	}
	return c
}

// Stub is a manually driven clock. After Reset(t) every Now call returns
// exactly t until the next Reset or Advance.
type Stub struct {
	mock *bclock.Mock
}

func NewStub(t int64) *Stub {
	s := &Stub{mock: bclock.NewMock()}
	s.Reset(t)
	return s
}

func (s *Stub) Now() int64 {
	return s.mock.Now().UnixMilli()
}

func (s *Stub) Reset(t int64) {
	s.mock.Set(time.UnixMilli(t))
}

func (s *Stub) Advance(d time.Duration) {
	s.mock.Add(d)
}

// DeltaSeconds returns whole seconds elapsed between since (unix millis) and now.
// Future timestamps yield zero.
func DeltaSeconds(c Clock, since int64) int64 {
	delta := OrDefault(c).Now() - since
	if delta < 0 {
		return 0
	}
	return delta / 1000
}
