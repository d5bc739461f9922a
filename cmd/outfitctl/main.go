// Command outfitctl runs the outfit pipeline from the terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"style-outfits/internal/config"
	"style-outfits/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "outfitctl",
	Short: "Analyze wardrobe photos and put together outfits",
	Long: `outfitctl drives the same pipeline as the HTTP server.

Settings come from the environment (and .env), exactly as for the server.
Command output goes to stdout as JSON, logs go to stderr.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(analyzeCmd, generateCmd, configCmd, datauriCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig reads settings and points the global logger at stderr.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if err := logging.SetupWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		return config.Config{}, fmt.Errorf("logging: %w", err)
	}
	return cfg, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
