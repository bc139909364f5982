package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rlevin/matchpoint/internal/api"
	"github.com/rlevin/matchpoint/internal/pipeline"
	"github.com/rlevin/matchpoint/internal/trace"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve exposes the analyzer over HTTP:
  GET  /health
  POST /api/analyze          {handbook_path, paystub, rsu?}
  POST /api/policy/question  {handbook_path, question?}

Set MATCHPOINT_API_KEY to require a Bearer token on /api routes.

Example:
  matchpoint serve
  matchpoint serve --addr :9090 --cache-dir /var/cache/matchpoint`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8084)")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable handbook text cache")
	serveCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist handbook cache to this directory (default: in-memory)")
	serveCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM recommendation synthesis")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if key := os.Getenv("MATCHPOINT_API_KEY"); key != "" {
		cfg.Server.APIKey = key
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	analyzer, err := pipeline.NewAnalyzer(cfg, trace.NewLogger(log))
	if err != nil {
		return fmt.Errorf("build analyzer: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewServer(analyzer, log, cfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.Bool("auth", cfg.Server.APIKey != ""),
		)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
