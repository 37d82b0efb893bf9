// Package quote holds the quote model, the shared current-quote cell and the
// fetcher that talks to the quote provider.
package quote

// Quote is a quotation and its author.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// ClipboardText is the form copied to the clipboard: "text" author.
func (q Quote) ClipboardText() string {
	return "\"" + q.Text + "\" " + q.Author
}

// FileContent is the form committed to GitHub: "text" — author followed by a
// blank line.
func (q Quote) FileContent() string {
	return "\"" + q.Text + "\" — " + q.Author + "\n\n"
}

// Fallbacks are shown when the provider cannot be reached.
var Fallbacks = []Quote{
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Text: "Life is what happens when you're busy making other plans.", Author: "John Lennon"},
	{Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
}
