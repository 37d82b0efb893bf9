// Package status keeps the persistent status line and the ephemeral toast.
package status

import (
	"sync"
	"time"
)

// ToastDuration is how long a toast stays visible after its latest show.
const ToastDuration = 3000 * time.Millisecond

type Kind string

const (
	Neutral Kind = "neutral"
	Error   Kind = "error"
	Loading Kind = "loading"
	Success Kind = "success"
)

type Status struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
}

type Toast struct {
	Message string `json:"message"`
	Visible bool   `json:"visible"`
	// Remaining is how long the toast stays up; zero when hidden.
	Remaining time.Duration `json:"-"`
}

// Reporter owns both channels. The status line never clears on its own; the
// toast hides ToastDuration after the most recent Toast call.
type Reporter struct {
	mu      sync.Mutex
	now     func() time.Time
	status  Status
	toast   string
	shownAt time.Time
}

func NewReporter() *Reporter {
	return NewReporterWithClock(time.Now)
}

// NewReporterWithClock uses now for toast expiry (e.g. a fake clock in tests).
func NewReporterWithClock(now func() time.Time) *Reporter {
	return &Reporter{now: now, status: Status{Kind: Neutral}}
}

// SetStatus replaces text and kind together.
func (r *Reporter) SetStatus(text string, kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = Status{Text: text, Kind: kind}
}

func (r *Reporter) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Toast shows msg immediately and restarts the visibility window.
func (r *Reporter) Toast(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toast = msg
	r.shownAt = r.now()
}

func (r *Reporter) Toasted() Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shownAt.IsZero() {
		return Toast{}
	}
	left := ToastDuration - r.now().Sub(r.shownAt)
	if left <= 0 {
		return Toast{Message: r.toast}
	}
	return Toast{Message: r.toast, Visible: true, Remaining: left}
}
