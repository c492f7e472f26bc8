package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/spine/internal/config"
	"github.com/jackzampolin/spine/internal/home"
	"github.com/jackzampolin/spine/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and segment books as they appear",
	Long: `Watch a directory and segment books as they appear.

Each new PDF or pages-JSON file is segmented; results are written next to
the input as <name>.chapters.json. Files that already have a result are
skipped. Configuration hot-reloads on change.

With no directory argument the spine home inbox (~/.spine/inbox) is
watched, and created if missing.

Example:
  spine watch ./inbox`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		var dir string
		if len(args) == 1 {
			dir = args[0]
		} else {
			h, err := home.New("")
			if err != nil {
				return err
			}
			if err := h.EnsureExists(); err != nil {
				return err
			}
			dir = h.InboxPath()
		}

		cm, err := loadConfig()
		if err != nil {
			return err
		}
		cm.WatchConfig()
		cfg := cm.Get()

		seg, err := newSegmenter(cfg, logger)
		if err != nil {
			return err
		}

		w, err := watch.New(watch.Config{
			Dir:        dir,
			Segmenter:  seg,
			MaxWorkers: cfg.Extract.MaxWorkers,
			Logger:     logger,
		})
		if err != nil {
			return err
		}

		// Reloaded config applies to books dropped after the change.
		cm.OnChange(func(cfg *config.Config) {
			seg, err := newSegmenter(cfg, logger)
			if err != nil {
				logger.Warn("config reload ignored, failed to rebuild segmenter", "error", err)
				return
			}
			w.Update(seg, cfg.Extract.MaxWorkers)
			logger.Info("segmenter settings reloaded")
		})

		if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
