package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/walexbarnes/nosey-web-sdk/internal/cache"
	"github.com/walexbarnes/nosey-web-sdk/internal/hub"
	"github.com/walexbarnes/nosey-web-sdk/internal/output"
	"github.com/walexbarnes/nosey-web-sdk/internal/pipeline"
	"github.com/walexbarnes/nosey-web-sdk/internal/server"
	"github.com/walexbarnes/nosey-web-sdk/internal/settings"
	"github.com/walexbarnes/nosey-web-sdk/internal/stats"
)

var (
	servePort     string
	cacheSize     int
	cacheTTL      time.Duration
	sweepInterval time.Duration
	settingsPath  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the inspector daemon",
	Long: `Run the inspector daemon: the browser extension posts network lifecycle
events to it, and connected devtools panels receive extracted results over
WebSocket. Matched requests are also echoed to this terminal.

Examples:
  nosey serve
  nosey serve --port 8675 --output json
  nosey serve --cache-ttl 2m --cache-size 50`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8675", "port for the daemon HTTP server")
	serveCmd.Flags().IntVar(&cacheSize, "cache-size", cache.DefaultCapacity, "max in-flight request entries")
	serveCmd.Flags().DurationVar(&cacheTTL, "cache-ttl", cache.DefaultTTL, "max age of a request entry")
	serveCmd.Flags().DurationVar(&sweepInterval, "sweep-interval", cache.DefaultSweepInterval, "background eviction sweep interval")
	serveCmd.Flags().StringVar(&settingsPath, "settings", "", "settings file (default: $HOME/.nosey/settings.yaml)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// --- Set up context with graceful shutdown ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nnosey shutting down gracefully...")
		cancel()
	}()

	// --- Load persisted settings ---
	path := settingsPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}
		path = filepath.Join(home, ".nosey", "settings.yaml")
	}
	store, err := settings.Open(path)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// --- Build the capture core ---
	correlations := cache.New(cacheSize, cacheTTL, sweepInterval)
	defer correlations.Close()

	h := hub.New(store.DebugMode)
	collector := stats.New(correlations.Len, correlations.Evictions, h.Dropped, h.Panels)
	pipe := pipeline.New(correlations, h, store, collector)
	srv := server.New(pipe, h, store, collector, servePort)

	// --- Background workers ---
	go collector.Start(ctx)
	go func() {
		if err := store.Watch(ctx); err != nil {
			log.Printf("settings watch stopped: %v", err)
		}
	}()

	// --- Terminal echo of matched requests ---
	renderer := chooseRenderer()
	results := h.Subscribe()
	go func() {
		for msg := range results {
			if err := renderer.Render(msg); err != nil {
				log.Printf("render error: %v", err)
			}
		}
	}()

	fmt.Fprintf(os.Stderr, "nosey listening on :%s (settings: %s)\n", servePort, path)
	fmt.Fprintf(os.Stderr, "   target paths: %s\n\n", strings.Join(store.TargetPaths(), ", "))

	return srv.Start()
}

// chooseRenderer maps the --output flag to a renderer.
func chooseRenderer() output.Renderer {
	switch strings.ToLower(outputFmt) {
	case "json":
		return output.NewJSONRenderer()
	default:
		return output.NewTextRenderer()
	}
}
