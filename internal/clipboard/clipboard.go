package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/shaun/quotewidget/internal/quote"
)

// ErrUnavailable means no clipboard backend accepted the write.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer writes text to a clipboard.
type Writer interface {
	WriteText(text string) error
}

// WriterFunc adapts a function into a Writer.
type WriterFunc func(text string) error

func (f WriterFunc) WriteText(text string) error { return f(text) }

// System writes to the OS clipboard.
type System struct{}

func (System) WriteText(s string) error {
	if err := clipboard.WriteAll(s); err == nil {
		return nil
	}
	// fallbacks for Wayland/X11
	if runtime.GOOS == "linux" {
		if err := exec.Command("wl-copy", s).Run(); err == nil {
			return nil
		}
		cmd := exec.Command("xclip", "-selection", "clipboard")
		cmd.Stdin = strings.NewReader(s)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return ErrUnavailable
}

// Deferred accepts every write without touching a clipboard. The HTTP front
// end uses it: the server formats the text and the browser writes it.
type Deferred struct{}

func (Deferred) WriteText(string) error { return nil }

// Publisher copies the displayed quote.
type Publisher struct {
	w Writer
}

func NewPublisher(w Writer) *Publisher {
	if w == nil {
		w = System{}
	}
	return &Publisher{w: w}
}

// Copy writes q in clipboard form and returns the copied text.
func (p *Publisher) Copy(q quote.Quote) (string, error) {
	text := q.ClipboardText()
	if err := p.w.WriteText(text); err != nil {
		return "", err
	}
	return text, nil
}
