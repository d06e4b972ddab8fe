// Command blockfall-bench drives many headless sessions with random commands
// and prints a markdown report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/config"
	"golang.org/x/sync/errgroup"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	sessions := flag.Int("sessions", runtime.NumCPU(), "The number of sessions to run in parallel.")
	seed := flag.Uint64("seed", 1, "Base seed. Session i uses seed+i.")
	configPath := flag.String("config", "", "Path to a YAML settings file for the game section.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if *sessions < 1 {
		log.Fatalf("-sessions must be at least 1, got %d", *sessions)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("Starting blockfall stress test...")

	report := &Report{
		Duration:       *duration,
		Sessions:       *sessions,
		Seed:           *seed,
		Width:          cfg.Game.Width,
		Height:         cfg.Game.Height,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running %d sessions for %s...\n", *sessions, *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	results := make([]Result, *sessions)
	g, ctx := errgroup.WithContext(ctx)
	startTime := time.Now()
	for i := range *sessions {
		game := cfg.Game
		game.Seed = *seed + uint64(i)
		g.Go(func() error {
			res, err := runWorker(ctx, game, game.Seed)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Stress test failed: %v", err)
	}

	report.TotalTime = time.Since(startTime)
	report.Merge(results)
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
