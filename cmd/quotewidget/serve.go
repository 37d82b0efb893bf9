package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaun/quotewidget/internal/api"
	"github.com/shaun/quotewidget/internal/auth"
	"github.com/shaun/quotewidget/internal/clipboard"
	"github.com/shaun/quotewidget/internal/config"
	"github.com/shaun/quotewidget/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quote widget over HTTP",
	Long:  `Serves the widget page and the JSON API it drives.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		log := logger.New(verbose)

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		mw := auth.Middleware(auth.Credentials{User: cfg.BasicUser, Password: cfg.BasicPassword})
		handler := api.NewHandler(newWidget(cfg, clipboard.Deferred{}, log), log)
		srv := &http.Server{Addr: cfg.Addr, Handler: api.NewRouter(handler, mw)}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		errc := make(chan error, 1)
		go func() {
			log.Info("quotewidget listening", "addr", cfg.Addr, "basic_auth", cfg.BasicAuthEnabled())
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides QUOTEWIDGET_ADDR and PORT)")
}
