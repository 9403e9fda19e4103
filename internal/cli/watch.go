// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/api2spec/apidoc/internal/openapi"
	"github.com/api2spec/apidoc/internal/scanner"
)

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch for file changes and regenerate the document",
	Long: `Watch for file changes and automatically regenerate the OpenAPI document.

This command monitors your source files for changes and triggers a regeneration
when files are modified. It's useful during development to keep your API
documentation in sync with your code.

Example:
  apidoc watch                          # Watch configured paths
  apidoc watch ./internal/api           # Watch specific paths
  apidoc watch --debounce 1000          # Wait 1s before regenerating`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: watch.debounce)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}

	paths := pathsOrDefault(args, cfg)
	log := logrus.StandardLogger()
	base := baseDir()
	src := newScanner(cfg, base)

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchDirs(watcher, src, paths); err != nil {
		return err
	}

	writer := openapi.NewWriter()
	outPath := resolvePath(cfg.Output)
	regenerate := func() {
		start := time.Now()
		doc, err := generateDocument(cfg, base, args, log)
		if err != nil {
			log.WithError(err).Error("regeneration failed")
			return
		}
		if err := writer.WriteFile(doc, outPath, cfg.Format); err != nil {
			log.WithError(err).Error("failed to write document")
			return
		}
		log.WithFields(logrus.Fields{
			"output":   cfg.Output,
			"paths":    len(doc.Paths),
			"duration": time.Since(start).Round(time.Millisecond),
		}).Info("document regenerated")
	}

	regenerate()

	printInfo("Watching for changes in: %s", strings.Join(paths, ", "))
	printInfo("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debounce := time.Duration(cfg.Watch.Debounce) * time.Millisecond
	return watchLoop(ctx, watcher, src, debounce, regenerate, log)
}

// watchDirs adds every non-excluded directory under roots to the watcher.
func watchDirs(watcher *fsnotify.Watcher, src *scanner.Scanner, roots []string) error {
	dirs, err := src.Dirs(roots)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return nil
}

// watchLoop calls onChange once matching file events have been quiet for
// debounce. New directories are watched as they appear. It returns when ctx
// is done or the watcher is closed.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, src *scanner.Scanner, debounce time.Duration, onChange func(), log logrus.FieldLogger) error {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDirs(watcher, src, []string{event.Name}); err != nil {
						log.WithError(err).Warn("failed to watch new directory")
					}
					continue
				}
			}
			if event.Op == fsnotify.Chmod || !src.Matches(event.Name) {
				continue
			}
			log.WithFields(logrus.Fields{
				"file": event.Name,
				"op":   event.Op.String(),
			}).Debug("change detected")
			timer.Reset(debounce)

		case <-timer.C:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		}
	}
}
