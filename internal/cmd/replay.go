package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/walexbarnes/nosey-web-sdk/internal/cache"
	"github.com/walexbarnes/nosey-web-sdk/internal/hub"
	"github.com/walexbarnes/nosey-web-sdk/internal/model"
	"github.com/walexbarnes/nosey-web-sdk/internal/pipeline"
	"github.com/walexbarnes/nosey-web-sdk/internal/replay"
	"github.com/walexbarnes/nosey-web-sdk/internal/settings"
	"github.com/walexbarnes/nosey-web-sdk/internal/stats"
)

var replayPaths []string

var replayCmd = &cobra.Command{
	Use:   "replay [files...]",
	Short: "Replay recorded lifecycle events through the extractor",
	Long: `Replay NDJSON capture files (or glob patterns) through the capture core
and print the extracted results, exactly as a live session would have
surfaced them. Useful for tuning target paths against saved traffic.

Examples:
  nosey replay capture.ndjson
  nosey replay "captures/**/*.ndjson" --output json
  nosey replay capture.ndjson --path commerce.order.priceTotal`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringArrayVar(&replayPaths, "path", nil, "extra target path (repeatable; defaults always included)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	// --- Expand glob patterns ---
	var files []string
	for _, pattern := range args {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			log.Printf("warning: failed to expand pattern %q: %v", pattern, err)
			continue
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched the given patterns: %v", args)
	}

	// --- Build an ephemeral capture core ---
	store := settings.Ephemeral(replayPaths)

	correlations := cache.New(cache.DefaultCapacity, cache.DefaultTTL, 0)
	defer correlations.Close()

	h := hub.New(nil)
	collector := stats.New(correlations.Len, correlations.Evictions, h.Dropped, h.Panels)
	pipe := pipeline.New(correlations, h, store, collector)

	renderer := chooseRenderer()
	results := h.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range results {
			if err := renderer.Render(msg); err != nil {
				log.Printf("render error: %v", err)
			}
		}
	}()

	// --- Feed events in file order ---
	var delivered, skipped int
	for _, f := range files {
		d, s, err := replay.ReadFile(f, func(ev model.NetworkEvent) {
			pipe.Handle(ev)
		})
		if err != nil {
			return err
		}
		delivered += d
		skipped += s
	}

	h.CloseSubscribers()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		log.Print("timed out draining results")
	}

	snap := collector.Snapshot()
	fmt.Fprintf(os.Stderr, "\nreplayed %d event(s) from %d file(s): %d matched, %d parse failure(s)",
		delivered, len(files), snap.MatchedRequests, snap.ParseFailures)
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, ", %d malformed line(s) skipped", skipped)
	}
	fmt.Fprintln(os.Stderr)

	return nil
}
