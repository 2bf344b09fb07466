package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/allisson/minidrive/internal/app"
	"github.com/allisson/minidrive/internal/config"
)

// RunSweepCapabilities removes every expired capability record from the
// configured backend and reports how many were deleted. The server runs the
// same sweep on a timer; this command exists for operators who want a manual
// pass, for example after lowering the maximum TTL.
//
// Requirements: the capability backend must be reachable.
func RunSweepCapabilities(ctx context.Context, format string) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("sweeping expired capabilities",
		slog.String("backend", cfg.CapabilityBackend),
	)

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get capability store from container
	capabilityStore, err := container.CapabilityStore()
	if err != nil {
		return fmt.Errorf("failed to initialize capability store: %w", err)
	}

	count, err := capabilityStore.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep expired capabilities: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputSweepJSON(count, cfg.CapabilityBackend)
	} else {
		outputSweepText(count)
	}

	logger.Info("sweep completed", slog.Int64("count", count))

	return nil
}

// outputSweepText outputs the result in human-readable text format.
func outputSweepText(count int64) {
	fmt.Printf("Successfully deleted %d expired capability record(s)\n", count)
}

// outputSweepJSON outputs the result in JSON format for machine consumption.
func outputSweepJSON(count int64, backend string) {
	result := map[string]interface{}{
		"count":   count,
		"backend": backend,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Println(string(jsonBytes))
}
