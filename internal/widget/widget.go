// Package widget runs the three user actions (new quote, copy, publish) over
// the shared current quote, the two display regions and the status reporter.
// The HTTP and terminal front ends both drive a single Widget.
package widget

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shaun/quotewidget/internal/github"
	"github.com/shaun/quotewidget/internal/logger"
	"github.com/shaun/quotewidget/internal/quote"
	"github.com/shaun/quotewidget/internal/status"
)

const (
	LoadingText     = "Loading quote..."
	FetchFailedText = "Failed to fetch quote. Please try again."

	ToastCopied     = "Quote copied to clipboard!"
	ToastCopyFailed = "Failed to copy quote to clipboard"
	ToastSaved      = "Quote saved to GitHub!"

	StatusMissingFields = "Please fill in all fields"
	StatusInvalidToken  = "Please enter a valid GitHub token"
	StatusInvalidRepo   = "Repository must be in owner/name form"
	StatusPushing       = "Pushing to GitHub..."
	StatusPushed        = "Successfully pushed quote to GitHub!"
	StatusPushFailed    = "Failed to push to GitHub. Please check your credentials."

	DefaultFallbackDelay = 1500 * time.Millisecond
)

// Fetcher is implemented by *quote.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context) (quote.Quote, error)
	Fallback() quote.Quote
}

// Copier is implemented by *clipboard.Publisher.
type Copier interface {
	Copy(q quote.Quote) (string, error)
}

// Publisher is implemented by *github.Client; inject a fake in tests.
type Publisher interface {
	Publish(ctx context.Context, req github.Request, q quote.Quote) (*github.Result, error)
}

// Display is what the two display regions show.
type Display struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	// Loading is set while a fetch is in flight.
	Loading bool `json:"loading"`
}

func displayOf(q quote.Quote) Display {
	return Display{Text: q.Text, Author: "— " + q.Author}
}

// State is a snapshot for rendering.
type State struct {
	Display Display       `json:"display"`
	Status  status.Status `json:"status"`
	Toast   status.Toast  `json:"toast"`
	// Pending is how long until a fallback quote replaces the failure text.
	Pending time.Duration `json:"-"`
}

type Config struct {
	Cell          *quote.Cell
	Fetcher       Fetcher
	Copier        Copier
	Publisher     Publisher
	Reporter      *status.Reporter
	Logger        *slog.Logger
	FallbackDelay time.Duration
	Now           func() time.Time
}

type Widget struct {
	cell          *quote.Cell
	fetcher       Fetcher
	copier        Copier
	gh            Publisher
	rep           *status.Reporter
	log           *slog.Logger
	fallbackDelay time.Duration
	now           func() time.Time

	// mu guards the display and pending reveal; cell writes happen under it
	// so the shown quote and the current quote change together.
	mu       sync.Mutex
	display  Display
	pending  *quote.Quote
	revealAt time.Time
}

func New(cfg Config) *Widget {
	w := &Widget{
		cell:          cfg.Cell,
		fetcher:       cfg.Fetcher,
		copier:        cfg.Copier,
		gh:            cfg.Publisher,
		rep:           cfg.Reporter,
		log:           cfg.Logger,
		fallbackDelay: cfg.FallbackDelay,
		now:           cfg.Now,
	}
	if w.cell == nil {
		w.cell = quote.NewCell()
	}
	if w.now == nil {
		w.now = time.Now
	}
	if w.rep == nil {
		w.rep = status.NewReporterWithClock(w.now)
	}
	if w.log == nil {
		w.log = logger.Discard()
	}
	if w.fallbackDelay <= 0 {
		w.fallbackDelay = DefaultFallbackDelay
	}
	return w
}

// Current returns the quote the user is looking at.
func (w *Widget) Current() quote.Quote {
	return w.cell.Get()
}

// NewQuote replaces the current quote with a fetched one, or with a fallback
// when the provider fails. The fallback becomes the current quote at once
// but is only shown after the fallback delay.
func (w *Widget) NewQuote(ctx context.Context) {
	w.mu.Lock()
	w.pending = nil
	w.display = Display{Text: LoadingText, Loading: true}
	w.mu.Unlock()

	q, err := w.fetcher.Fetch(ctx)
	if err == nil {
		w.mu.Lock()
		w.cell.Set(q)
		w.pending = nil
		w.display = displayOf(q)
		w.mu.Unlock()
		return
	}

	w.log.Error("fetching quote", "err", err)
	fb := w.fetcher.Fallback()
	w.mu.Lock()
	w.cell.Set(fb)
	w.display = Display{Text: FetchFailedText}
	w.pending = &fb
	w.revealAt = w.now().Add(w.fallbackDelay)
	w.mu.Unlock()
}

// Copy writes the current quote to the clipboard and reports through the toast.
func (w *Widget) Copy() (string, error) {
	text, err := w.copier.Copy(w.cell.Get())
	if err != nil {
		w.log.Error("copying quote", "err", err)
		w.rep.Toast(ToastCopyFailed)
		return "", err
	}
	w.rep.Toast(ToastCopied)
	return text, nil
}

// CopyFailed reports a clipboard write that failed outside the process, e.g.
// in the browser after Copy handed it the text.
func (w *Widget) CopyFailed(reason string) {
	w.log.Error("copying quote", "err", reason)
	w.rep.Toast(ToastCopyFailed)
}

// Push commits the current quote. It returns the form to show afterwards:
// on success only the commit message is cleared.
func (w *Widget) Push(ctx context.Context, form github.Request) github.Request {
	req := form.Trimmed()
	if _, _, err := req.Validate(); err != nil {
		w.rep.SetStatus(validationText(err), status.Error)
		return form
	}

	w.rep.SetStatus(StatusPushing, status.Loading)
	q := w.cell.Get()
	if _, err := w.gh.Publish(ctx, req, q); err != nil {
		var ae *github.APIError
		if errors.As(err, &ae) {
			w.log.Error("GitHub API error", "status", ae.StatusCode, "message", ae.Message)
			w.rep.SetStatus("Error: "+ae.Message, status.Error)
			return form
		}
		w.log.Error("pushing to GitHub", "err", err)
		w.rep.SetStatus(StatusPushFailed, status.Error)
		return form
	}
	w.rep.SetStatus(StatusPushed, status.Success)
	w.rep.Toast(ToastSaved)
	form.Message = ""
	return form
}

func validationText(err error) string {
	switch {
	case errors.Is(err, github.ErrMissingFields):
		return StatusMissingFields
	case errors.Is(err, github.ErrInvalidToken):
		return StatusInvalidToken
	case errors.Is(err, github.ErrInvalidRepo):
		return StatusInvalidRepo
	}
	return err.Error()
}

// State returns the current display, status and toast.
func (w *Widget) State() State {
	w.mu.Lock()
	if w.pending != nil && !w.now().Before(w.revealAt) {
		w.display = displayOf(*w.pending)
		w.pending = nil
	}
	st := State{Display: w.display}
	if w.pending != nil {
		st.Pending = w.revealAt.Sub(w.now())
	}
	w.mu.Unlock()

	st.Status = w.rep.Status()
	st.Toast = w.rep.Toasted()
	return st
}
