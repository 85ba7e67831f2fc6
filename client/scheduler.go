package client

import (
	"sync"
	"time"
)

const (
	// minRenewalPeriod is the floor for the token renewal interval so a
	// short-lived access token cannot hammer the backend.
	minRenewalPeriod = 30 * time.Second

	// renewalMargin is how long before access token expiry a refresh is
	// scheduled.
	renewalMargin = 45 * time.Second

	// defaultSampleRate is how often the suspend detector samples the
	// wall clock.
	defaultSampleRate = 2 * time.Second
)

// renewalPeriod derives the refresh interval from the access token
// lifetime in seconds, clamped to minRenewalPeriod.
func renewalPeriod(expiresIn int64) time.Duration {
	period := time.Duration(expiresIn)*time.Second - renewalMargin
	if period < minRenewalPeriod {
		period = minRenewalPeriod
	}
	return period
}

// refreshScheduler drives background token renewal for one client. It
// owns two timers: a renewal ticker derived from the access token
// lifetime, and a wall-clock sampler that detects machine suspend. When
// two samples are further apart than twice the sample rate the machine
// slept through at least one renewal, so a refresh fires immediately.
//
// Arm while armed re-derives the ticker period in place; Disarm is safe
// to call from the refresh callback itself.
type refreshScheduler struct {
	sampleRate time.Duration
	override   time.Duration // fixed renewal period, 0 derives from expiresIn
	refresh    func()
	now        func() time.Time

	mu    sync.Mutex
	armed bool
	stop  chan struct{}
	reset chan time.Duration
	wg    sync.WaitGroup
}

func newRefreshScheduler(sampleRate, override time.Duration, refresh func()) *refreshScheduler {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	return &refreshScheduler{
		sampleRate: sampleRate,
		override:   override,
		refresh:    refresh,
		now:        time.Now,
	}
}

// Arm starts the timers, or re-derives the renewal period if already
// armed. expiresIn is the access token lifetime in seconds.
func (s *refreshScheduler) Arm(expiresIn int64) {
	period := s.override
	if period <= 0 {
		period = renewalPeriod(expiresIn)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.armed {
		// The loop may be blocked inside the refresh callback; the
		// buffered channel keeps this send from deadlocking, and a
		// dropped reset is harmless since the pending one wins.
		select {
		case s.reset <- period:
		default:
		}
		return
	}

	s.armed = true
	s.stop = make(chan struct{})
	s.reset = make(chan time.Duration, 1)
	s.wg.Add(1)
	go s.loop(s.stop, s.reset, period)
}

// Disarm stops the timers. Does not wait for the loop to exit so it can
// be called from within the refresh callback.
func (s *refreshScheduler) Disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.armed {
		return
	}
	s.armed = false
	close(s.stop)
}

// Armed reports whether the timers are running.
func (s *refreshScheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// Close disarms and waits for the loop to exit. Must not be called from
// the refresh callback.
func (s *refreshScheduler) Close() {
	s.Disarm()
	s.wg.Wait()
}

func (s *refreshScheduler) loop(stop chan struct{}, reset chan time.Duration, period time.Duration) {
	defer s.wg.Done()

	renew := time.NewTicker(period)
	defer renew.Stop()

	sample := time.NewTicker(s.sampleRate)
	defer sample.Stop()

	lastSample := s.now()

	for {
		select {
		case <-stop:
			return
		case p := <-reset:
			renew.Reset(p)
		case <-renew.C:
			s.refresh()
		case <-sample.C:
			now := s.now()
			if now.Sub(lastSample) >= 2*s.sampleRate {
				s.refresh()
			}
			lastSample = now
		}
	}
}
