package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/spine/internal/config"
	"github.com/jackzampolin/spine/internal/pipeline"
	"github.com/jackzampolin/spine/internal/profile"
)

// watchSettleDelay is how long a dropped file must stay quiet before a
// parse starts, so a copy in progress is not read half-written.
const watchSettleDelay = 2 * time.Second

var watchVerbose bool

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and parse every PDF dropped into it",
	Long: `Watch a directory for new PDF files and run the parse pipeline on
each one as it arrives. Outputs go to a per-document subdirectory of
the configured output directory. Configuration changes are picked up
between runs.

Examples:
  spine watch ./inbox
  spine watch ./inbox --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		fi, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("watch directory not found: %s", dir)
		}
		if !fi.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}

		logger := newLogger(watchVerbose)

		manager, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		manager.OnChange(func(*config.Config) {
			logger.Info("configuration reloaded")
		})
		manager.WatchConfig()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer watcher.Close()
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}

		logger.Info("watching for PDFs", "dir", dir)
		return watchLoop(cmd.Context(), watcher, manager, logger)
	},
}

func init() {
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "debug logging")
}

// watchLoop runs until the context is cancelled, parsing each PDF once
// its events settle.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, manager *config.Manager, logger *slog.Logger) error {
	pending := make(map[string]*time.Timer)
	parsed := make(chan string)

	for {
		select {
		case <-ctx.Done():
			return nil

		case path := <-parsed:
			delete(pending, path)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}

			path := event.Name
			if timer, ok := pending[path]; ok {
				timer.Reset(watchSettleDelay)
				continue
			}
			pending[path] = time.AfterFunc(watchSettleDelay, func() {
				watchParse(ctx, path, manager, logger)
				select {
				case parsed <- path:
				case <-ctx.Done():
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// watchParse runs one pipeline pass over a dropped file. Failures are
// logged, not fatal: one bad drop must not stop the watch.
func watchParse(ctx context.Context, path string, manager *config.Manager, logger *slog.Logger) {
	cfg := manager.Get()

	registry, err := loadRegistry(cfg, logger)
	if err != nil {
		logger.Error("failed to load profiles", "error", err)
		registry = profile.NewRegistry()
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outputDir := filepath.Join(cfg.OutputDir, name)

	logger.Info("parsing dropped file", "path", path, "output_dir", outputDir)
	res, err := pipeline.Run(ctx, pipeline.Options{
		PDFPath:      path,
		OutputDir:    outputDir,
		DocType:      cfg.DocType,
		DocTitle:     cfg.DocTitle,
		TOCScanPages: cfg.TOCScanPages,
		Workers:      cfg.Workers,
		Registry:     registry,
		Logger:       logger,
	})
	if err != nil {
		logger.Error("parse failed", "path", path, "error", err)
		return
	}
	logger.Info("parse complete",
		"path", path,
		"toc_entries", res.TOCEntries,
		"sections", res.Sections,
		"coverage", fmt.Sprintf("%.1f%%", res.Coverage))
}
