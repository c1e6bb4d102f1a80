package registration

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultSuccessWindow is how long the success indicator stays up.
const DefaultSuccessWindow = 3 * time.Second

// Status is the submission flow's user-visible state.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	}
	return "unknown"
}

// Submitter sends a form over the network to the registration service.
type Submitter interface {
	Submit(ctx context.Context, f Form) error
}

// Flow drives one registration form: it submits once, shows success for a
// fixed window and then clears, or shows a generic failure until the next
// submit.
type Flow struct {
	submitter Submitter
	window    time.Duration

	mu     sync.Mutex
	status Status
	gen    uint64
	timer  *time.Timer
}

// NewFlow returns an idle flow. A non-positive window uses
// DefaultSuccessWindow.
func NewFlow(s Submitter, window time.Duration) *Flow {
	if window <= 0 {
		window = DefaultSuccessWindow
	}
	return &Flow{submitter: s, window: window}
}

// Submit sends the form exactly once and returns the resulting status,
// StatusSuccess or StatusFailure. A submit already in flight is not
// duplicated: the call returns StatusSubmitting without sending.
func (fl *Flow) Submit(ctx context.Context, f Form) Status {
	fl.mu.Lock()
	if fl.status == StatusSubmitting {
		fl.mu.Unlock()
		return StatusSubmitting
	}
	fl.status = StatusSubmitting
	fl.gen++
	gen := fl.gen
	if fl.timer != nil {
		fl.timer.Stop()
		fl.timer = nil
	}
	fl.mu.Unlock()

	err := fl.submitter.Submit(ctx, f)

	fl.mu.Lock()
	defer fl.mu.Unlock()
	if err != nil {
		log.Printf("[Registration] submit failed: %v", err)
		fl.status = StatusFailure
		return fl.status
	}
	fl.status = StatusSuccess
	fl.timer = time.AfterFunc(fl.window, func() {
		fl.mu.Lock()
		defer fl.mu.Unlock()
		if fl.gen == gen && fl.status == StatusSuccess {
			fl.status = StatusIdle
		}
	})
	return fl.status
}

// Status returns the current state.
func (fl *Flow) Status() Status {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.status
}

// Stop cancels a pending success-window timer.
func (fl *Flow) Stop() {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.timer != nil {
		fl.timer.Stop()
		fl.timer = nil
	}
}
