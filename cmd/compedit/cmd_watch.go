package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"compedit/internal/document"
)

// watchCmd follows a component file and reports external modifications,
// reloading and reprinting the component count each time it settles.
var watchCmd = &cobra.Command{
	Use:   "watch <file.cpp>",
	Short: "Watch a component file for external changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !cfg.Watcher.Enabled {
		return fmt.Errorf("file watching is disabled (set watcher.enabled: true in %s)", cfgPath)
	}
	path := args[0]
	doc := openDocument(path)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fw, err := document.NewFileWatcher(path, cfg.DebounceDuration(), logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fw.Stop()

	fmt.Printf("watching %s (ctrl-c to stop)\n", path)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !fw.ChangedOnDisk() {
				continue
			}
			fw.ClearChanged()
			if doc.Reload() {
				fmt.Printf("%s changed on disk: reloaded, %d components\n", path, doc.NumComponents())
			} else {
				fmt.Printf("%s changed on disk but is no longer loadable\n", path)
			}
		}
	}
}
