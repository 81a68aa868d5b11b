package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/config"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/server"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat API over HTTP",
	Long: `Serve the travel assistant over HTTP.

Endpoints:
  POST /chat     {"message": "..."} -> {"response": "...", "status": "success"}
  GET  /health   liveness and knowledge base state (?deep=1 also pings the provider)
  GET  /status   document counts per category and the configured model
  GET  /metrics  Prometheus metrics

With --watch the knowledge base is reloaded when files under the corpus root
change; requests in flight keep the snapshot they started with.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config, default :5000)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the knowledge base when files change")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(config.ProfileService)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		a.cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch || a.cfg.Corpus.Watch {
		w, err := corpus.NewWatcher(a.cfg.WatcherConfig(nil), a.holder, a.logger)
		if err != nil {
			// Serving the loaded snapshot is still useful.
			a.logger.Warn("knowledge base watcher disabled", "error", err)
		} else {
			go w.Run(ctx)
		}
	}

	srv := server.New(server.Config{
		Addr:        a.cfg.Server.Addr,
		RateLimit:   a.cfg.Server.RateLimit,
		RateBurst:   a.cfg.Server.RateBurst,
		CORSOrigins: a.cfg.Server.CORSOrigins,
	}, a.pipeline, a.logger)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
