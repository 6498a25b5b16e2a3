package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// =============================================================================
// Breaker Test Suite
// =============================================================================
// Justification for unit tests: the upstream client relies on the breaker's
// counting rules to decide when to stop calling a failing backend. Tests pin
// the thresholds, the counter resets and the probe cadence.

type BreakerSuite struct {
	suite.Suite
	now time.Time
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) SetupTest() {
	s.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s *BreakerSuite) newBreaker(opts ...Option) *Breaker {
	opts = append(opts, WithClock(func() time.Time { return s.now }))
	return New("upstream", opts...)
}

func (s *BreakerSuite) TestStartsClosed() {
	b := s.newBreaker()
	s.False(b.IsOpen())
	s.Equal(StateClosed, b.State())
	s.Equal("upstream", b.Name())
	s.True(b.Allow())
}

func (s *BreakerSuite) TestOpensAtFailureThreshold() {
	b := s.newBreaker(WithFailureThreshold(3))

	for range 2 {
		useFallback, change := b.RecordFailure()
		s.False(useFallback)
		s.False(change.Opened)
	}

	useFallback, change := b.RecordFailure()
	s.True(useFallback)
	s.True(change.Opened)
	s.Equal(StateOpen, b.State())

	s.Run("further failures report no transition", func() {
		useFallback, change := b.RecordFailure()
		s.True(useFallback)
		s.False(change.Opened)
	})
}

func (s *BreakerSuite) TestSuccessResetsFailureRun() {
	b := s.newBreaker(WithFailureThreshold(3))
	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()

	b.RecordFailure()
	b.RecordFailure()
	s.False(b.IsOpen(), "run was broken by the success")

	b.RecordFailure()
	s.True(b.IsOpen())
}

func (s *BreakerSuite) TestClosesAtSuccessThreshold() {
	b := s.newBreaker(WithFailureThreshold(1), WithSuccessThreshold(3))
	b.RecordFailure()

	b.RecordSuccess()
	b.RecordSuccess()
	b.RecordFailure()
	s.True(b.IsOpen(), "failure restarts the success run")

	for range 2 {
		usePrimary, change := b.RecordSuccess()
		s.False(usePrimary)
		s.False(change.Closed)
	}
	usePrimary, change := b.RecordSuccess()
	s.True(usePrimary)
	s.True(change.Closed)
	s.False(b.IsOpen())
}

func (s *BreakerSuite) TestAllowProbesOncePerCooldown() {
	b := s.newBreaker(WithFailureThreshold(1), WithCooldown(time.Minute))
	b.RecordFailure()
	s.False(b.Allow())

	s.now = s.now.Add(59 * time.Second)
	s.False(b.Allow())

	s.now = s.now.Add(time.Second)
	s.True(b.Allow())
	s.False(b.Allow(), "second caller waits for the next cooldown")

	_, change := b.RecordSuccess()
	s.True(change.Closed)
	s.True(b.Allow())
}

func (s *BreakerSuite) TestReset() {
	b := s.newBreaker(WithFailureThreshold(1))
	b.RecordFailure()
	s.Require().True(b.IsOpen())

	b.Reset()
	s.Equal(StateClosed, b.State())
	s.True(b.Allow())
}
