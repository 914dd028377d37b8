package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobdigest/internal/notifier"
	"github.com/amishk599/jobdigest/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse the digest interactively (TUI)",
	Long:  "Shows a source picker, fetches with a spinner, then lists the deduplicated jobs. Nothing is sent.",
	RunE:  runPreviewCmd,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreviewCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Log output while the TUI is running corrupts the display.
	silent := slog.New(slog.NewTextHandler(io.Discard, nil))
	entries := enabledEntries(cfg, newHTTPClient(cfg))
	dry := notifier.NewLogNotifier(silent, nil)

	labels := []string{"All sources"}
	for _, e := range entries {
		labels = append(labels, e.display)
	}

	for {
		choice, err := preview.RunPicker(labels)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return nil
		}
		if choice < 0 {
			return nil
		}

		selected := entries
		if choice > 0 {
			selected = entries[choice-1 : choice]
		}
		d := buildDigest(cfg, selected, dry, nil, silent)

		coll, err := preview.RunLoader(context.Background(), labels[choice], d.Collect)
		if errors.Is(err, preview.ErrCancelled) {
			continue
		}
		if err != nil {
			fmt.Printf("Error fetching jobs: %v\n", err)
			continue
		}

		wantQuit, err := preview.RunBrowser(labels[choice], coll)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit {
			return nil
		}
		// else: loop → back to picker
	}
}
