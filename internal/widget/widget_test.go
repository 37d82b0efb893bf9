package widget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/shaun/quotewidget/internal/github"
	"github.com/shaun/quotewidget/internal/quote"
	"github.com/shaun/quotewidget/internal/status"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeFetcher struct {
	q        quote.Quote
	err      error
	fallback quote.Quote
	calls    int
}

func (f *fakeFetcher) Fetch(context.Context) (quote.Quote, error) {
	f.calls++
	return f.q, f.err
}

func (f *fakeFetcher) Fallback() quote.Quote { return f.fallback }

type fakeCopier struct {
	got string
	err error
}

func (f *fakeCopier) Copy(q quote.Quote) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.got = q.ClipboardText()
	return f.got, nil
}

type fakePublisher struct {
	calls []github.Request
	quote quote.Quote
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, req github.Request, q quote.Quote) (*github.Result, error) {
	f.calls = append(f.calls, req)
	f.quote = q
	if f.err != nil {
		return nil, f.err
	}
	return &github.Result{Created: true}, nil
}

func newTestWidget(f Fetcher, c Copier, p Publisher) (*Widget, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1700000000, 0)}
	w := New(Config{Fetcher: f, Copier: c, Publisher: p, Now: clk.now})
	return w, clk
}

func TestWidget_NewQuote_success(t *testing.T) {
	f := &fakeFetcher{q: quote.Quote{Text: "Stay hungry.", Author: "Someone"}}
	w, _ := newTestWidget(f, nil, nil)
	w.NewQuote(context.Background())

	if got := w.Current(); got != f.q {
		t.Fatalf("Current = %+v", got)
	}
	want := Display{Text: "Stay hungry.", Author: "— Someone"}
	if diff := cmp.Diff(want, w.State().Display); diff != "" {
		t.Errorf("display mismatch (-want +got):\n%s", diff)
	}
}

func TestWidget_NewQuote_fallbackAfterDelay(t *testing.T) {
	fb := quote.Fallbacks[1]
	f := &fakeFetcher{err: errors.New("boom"), fallback: fb}
	w, clk := newTestWidget(f, nil, nil)
	w.NewQuote(context.Background())

	if got := w.Current(); got != fb {
		t.Fatalf("fallback should be current immediately, got %+v", got)
	}
	st := w.State()
	if st.Display != (Display{Text: FetchFailedText}) {
		t.Fatalf("display before delay %+v", st.Display)
	}
	if st.Pending != DefaultFallbackDelay {
		t.Fatalf("pending %v", st.Pending)
	}
	if f.calls != 1 {
		t.Fatalf("fetch retried: %d calls", f.calls)
	}

	clk.advance(DefaultFallbackDelay)
	st = w.State()
	if st.Display != displayOf(fb) || st.Pending != 0 {
		t.Fatalf("display after delay %+v pending %v", st.Display, st.Pending)
	}
}

func TestWidget_NewQuote_successCancelsPendingFallback(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom"), fallback: quote.Fallbacks[0]}
	w, clk := newTestWidget(f, nil, nil)
	w.NewQuote(context.Background())

	f.err = nil
	f.q = quote.Quote{Text: "fresh", Author: "B"}
	w.NewQuote(context.Background())
	clk.advance(2 * DefaultFallbackDelay)

	if got := w.State().Display; got != displayOf(f.q) {
		t.Fatalf("stale fallback shown: %+v", got)
	}
	if w.Current() != f.q {
		t.Fatalf("current %+v", w.Current())
	}
}

func TestWidget_Copy(t *testing.T) {
	c := &fakeCopier{}
	w, _ := newTestWidget(&fakeFetcher{q: quote.Quote{Text: "Hello", Author: "A"}}, c, nil)
	w.NewQuote(context.Background())

	text, err := w.Copy()
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if text != `"Hello" A` || c.got != text {
		t.Fatalf("copied %q", text)
	}
	if got := w.State().Toast; !got.Visible || got.Message != ToastCopied {
		t.Fatalf("toast %+v", got)
	}
}

func TestWidget_Copy_failure(t *testing.T) {
	c := &fakeCopier{err: errors.New("permission denied")}
	w, clk := newTestWidget(&fakeFetcher{q: quote.Quote{Text: "Hello", Author: "A"}}, c, nil)
	w.NewQuote(context.Background())
	before := w.State()

	if _, err := w.Copy(); err == nil {
		t.Fatal("expected error")
	}
	after := w.State()
	if after.Toast.Message != ToastCopyFailed || !after.Toast.Visible {
		t.Fatalf("toast %+v", after.Toast)
	}
	if after.Display != before.Display || after.Status != before.Status || w.Current() != (quote.Quote{Text: "Hello", Author: "A"}) {
		t.Fatal("copy failure mutated state")
	}
	clk.advance(status.ToastDuration)
	if w.State().Toast.Visible {
		t.Fatal("toast should auto-hide")
	}
}

func TestWidget_Push_validation(t *testing.T) {
	full := github.Request{Token: "ghp_abc", Repo: "o/r", Path: "q.txt", Message: "m"}
	tests := []struct {
		name string
		mut  func(*github.Request)
		want string
	}{
		{"empty token", func(r *github.Request) { r.Token = "" }, StatusMissingFields},
		{"empty repo", func(r *github.Request) { r.Repo = "" }, StatusMissingFields},
		{"empty path", func(r *github.Request) { r.Path = "   " }, StatusMissingFields},
		{"empty message", func(r *github.Request) { r.Message = "" }, StatusMissingFields},
		{"bad token", func(r *github.Request) { r.Token = "gho_abc" }, StatusInvalidToken},
		{"bad repo", func(r *github.Request) { r.Repo = "quotes" }, StatusInvalidRepo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePublisher{}
			w, _ := newTestWidget(&fakeFetcher{}, nil, p)
			form := full
			tt.mut(&form)
			got := w.Push(context.Background(), form)
			if len(p.calls) != 0 {
				t.Fatalf("publisher called %d times", len(p.calls))
			}
			if st := w.State().Status; st != (status.Status{Text: tt.want, Kind: status.Error}) {
				t.Fatalf("status %+v", st)
			}
			if got != form {
				t.Fatalf("form changed: %+v", got)
			}
		})
	}
}

func TestWidget_Push_success(t *testing.T) {
	p := &fakePublisher{}
	viewing := quote.Quote{Text: "Hello", Author: "A"}
	w, _ := newTestWidget(&fakeFetcher{q: viewing}, nil, p)
	w.NewQuote(context.Background())

	form := github.Request{Token: " ghp_abc ", Repo: "o/r", Path: "q.txt", Message: "add quote"}
	got := w.Push(context.Background(), form)

	want := github.Request{Token: " ghp_abc ", Repo: "o/r", Path: "q.txt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("form mismatch (-want +got):\n%s", diff)
	}
	if len(p.calls) != 1 || p.calls[0].Token != "ghp_abc" {
		t.Fatalf("publisher calls %+v", p.calls)
	}
	if p.quote != viewing {
		t.Fatalf("published %+v, viewing %+v", p.quote, viewing)
	}
	st := w.State()
	if st.Status != (status.Status{Text: StatusPushed, Kind: status.Success}) {
		t.Fatalf("status %+v", st.Status)
	}
	if !st.Toast.Visible || st.Toast.Message != ToastSaved {
		t.Fatalf("toast %+v", st.Toast)
	}
}

func TestWidget_Push_errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api message", &github.APIError{StatusCode: 401, Message: "Bad credentials"}, "Error: Bad credentials"},
		{"wrapped api message", fmt.Errorf("wrap: %w", &github.APIError{StatusCode: 409, Message: "conflict"}), "Error: conflict"},
		{"transport", errors.New("dial tcp: refused"), StatusPushFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePublisher{err: tt.err}
			w, _ := newTestWidget(&fakeFetcher{}, nil, p)
			form := github.Request{Token: "ghp_abc", Repo: "o/r", Path: "q.txt", Message: "m"}
			if got := w.Push(context.Background(), form); got != form {
				t.Fatalf("form changed on failure: %+v", got)
			}
			st := w.State()
			if st.Status != (status.Status{Text: tt.want, Kind: status.Error}) {
				t.Fatalf("status %+v", st.Status)
			}
			if st.Toast.Visible {
				t.Fatal("no toast on failure")
			}
		})
	}
}

// gatedFetcher hands out a distinct quote per call once release is closed.
type gatedFetcher struct {
	n       atomic.Int64
	release chan struct{}
}

func (f *gatedFetcher) Fetch(context.Context) (quote.Quote, error) {
	n := f.n.Add(1)
	<-f.release
	return quote.Quote{Text: strconv.FormatInt(n, 10), Author: "gate"}, nil
}

func (f *gatedFetcher) Fallback() quote.Quote { return quote.Fallbacks[0] }

func TestWidget_NewQuote_overlappingKeepsDisplayAndCurrentInStep(t *testing.T) {
	for round := 0; round < 200; round++ {
		f := &gatedFetcher{release: make(chan struct{})}
		w, _ := newTestWidget(f, nil, nil)

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.NewQuote(context.Background())
			}()
		}
		close(f.release)
		wg.Wait()

		if got, want := w.State().Display, displayOf(w.Current()); got != want {
			t.Fatalf("round %d: display %+v but current quote %+v", round, got, w.Current())
		}
	}
}

func TestWidget_CopyFailed(t *testing.T) {
	w, _ := newTestWidget(&fakeFetcher{}, nil, nil)
	w.CopyFailed("NotAllowedError")
	if got := w.State().Toast; !got.Visible || got.Message != ToastCopyFailed {
		t.Fatalf("toast %+v", got)
	}
}
