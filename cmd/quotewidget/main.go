package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaun/quotewidget/internal/clipboard"
	"github.com/shaun/quotewidget/internal/config"
	"github.com/shaun/quotewidget/internal/github"
	"github.com/shaun/quotewidget/internal/quote"
	"github.com/shaun/quotewidget/internal/widget"
)

var rootCmd = &cobra.Command{
	Use:   "quotewidget",
	Short: "Show a random quote, copy it, or commit it to GitHub.",
	Long: `quotewidget fetches a random quote, copies it to the clipboard and
commits it to a GitHub repository with a personal access token. It runs
either as a small web server (serve) or in the terminal (tui).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "quotewidget: %v\n", err)
		os.Exit(1)
	}
}

// newWidget builds the widget; clip decides where copies land.
func newWidget(cfg config.Config, clip clipboard.Writer, log *slog.Logger) *widget.Widget {
	fetcher := quote.NewFetcher(
		quote.WithBaseURL(cfg.QuoteAPI),
		quote.WithTimeout(cfg.HTTPTimeout),
	)
	gh := github.NewClient(
		github.WithBaseURL(cfg.GitHubAPI),
		github.WithTimeout(cfg.HTTPTimeout),
		github.WithLogger(log),
	)
	return widget.New(widget.Config{
		Fetcher:       fetcher,
		Copier:        clipboard.NewPublisher(clip),
		Publisher:     gh,
		Logger:        log,
		FallbackDelay: cfg.FallbackDelay,
	})
}
