package boot

import (
	"sync"
	"time"

	"github.com/hosbabel/hosbabel/internal/models"
)

// Animation tracks elapsed time for one run of the boot timeline
type Animation struct {
	mu       sync.Mutex
	duration time.Duration
	start    time.Time
	onDone   func()
	done     bool
	stopped  bool
}

// NewAnimation creates an animation of the given duration. A non-positive
// duration uses models.BootDuration. onDone runs once when the timeline ends,
// unless the animation was stopped first.
func NewAnimation(duration time.Duration, onDone func()) *Animation {
	if duration <= 0 {
		duration = models.BootDuration
	}
	return &Animation{duration: duration, onDone: onDone}
}

// Start pins the timeline origin. Step calls it implicitly on first use.
func (a *Animation) Start(now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.start.IsZero() {
		a.start = now
	}
}

// Duration returns the total length of the timeline
func (a *Animation) Duration() time.Duration {
	return a.duration
}

// Step returns the frame at now and whether the timeline has finished.
// The completion callback fires on the first Step that reaches the end.
func (a *Animation) Step(now time.Time) (Frame, bool) {
	a.mu.Lock()
	if a.start.IsZero() {
		a.start = now
	}
	p := float64(now.Sub(a.start)) / float64(a.duration)
	if p > 1 {
		p = 1
	}
	if a.stopped {
		a.mu.Unlock()
		return At(p), true
	}

	var fire func()
	if p >= 1 && !a.done {
		a.done = true
		fire = a.onDone
	}
	finished := a.done
	a.mu.Unlock()

	if fire != nil {
		fire()
	}
	return At(p), finished
}

// Stop cancels the animation. No callback runs after Stop returns.
func (a *Animation) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
}

// Done reports whether the timeline ran to completion
func (a *Animation) Done() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}
