package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shaun/quotewidget/internal/clipboard"
	"github.com/shaun/quotewidget/internal/config"
	"github.com/shaun/quotewidget/internal/logger"
	"github.com/shaun/quotewidget/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the quote widget in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// logs must stay off the screen while the program owns it
		var out io.Writer = io.Discard
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			out = f
		}
		log := logger.NewWithWriter(out, verbose)

		ctx := cmd.Context()
		p := tea.NewProgram(ui.NewModel(ctx, newWidget(cfg, clipboard.System{}, log)), tea.WithAltScreen(), tea.WithContext(ctx))
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
