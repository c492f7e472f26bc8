// Package watch runs segmentation over books dropped into a directory.
// Each new PDF or pages-JSON file is segmented and a sibling
// <name>.chapters.json file is written with the result.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/jackzampolin/spine/internal/ingest"
	"github.com/jackzampolin/spine/internal/segment"
	"github.com/jackzampolin/spine/internal/types"
)

const resultSuffix = ".chapters.json"

// Config configures a Watcher.
type Config struct {
	Dir        string             // Directory to watch
	Segmenter  *segment.Segmenter // Required
	MaxWorkers int                // Page extraction concurrency per book
	Logger     *slog.Logger       // Optional; defaults to slog.Default()
}

// Watcher segments books as they appear in a directory. The segmenter and
// worker settings can be swapped while running via Update, which is how
// config hot reload reaches books dropped after a change.
type Watcher struct {
	dir    string
	logger *slog.Logger
	fsw    *fsnotify.Watcher

	mu         sync.RWMutex
	segmenter  *segment.Segmenter
	maxWorkers int
}

// New creates a Watcher for the given directory.
func New(cfg Config) (*Watcher, error) {
	if cfg.Segmenter == nil {
		return nil, fmt.Errorf("segmenter is required")
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path is not a directory: %s", cfg.Dir)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}
	if err := fsw.Add(cfg.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", cfg.Dir, err)
	}

	return &Watcher{
		dir:        cfg.Dir,
		segmenter:  cfg.Segmenter,
		maxWorkers: cfg.MaxWorkers,
		logger:     logger,
		fsw:        fsw,
	}, nil
}

// Update swaps the segmenter and worker settings used for books processed
// from now on. Books already being processed keep the settings they started
// with. A nil segmenter is ignored.
func (w *Watcher) Update(seg *segment.Segmenter, maxWorkers int) {
	if seg == nil {
		return
	}
	w.mu.Lock()
	w.segmenter = seg
	w.maxWorkers = maxWorkers
	w.mu.Unlock()
}

func (w *Watcher) current() (*segment.Segmenter, int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.segmenter, w.maxWorkers
}

// Run processes events until the context is canceled. Files already present
// in the directory are processed once at startup.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to list watch directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		w.maybeProcess(ctx, filepath.Join(w.dir, e.Name()))
	}

	w.logger.Info("watching for books", "dir", w.dir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			// Create covers both drops and renames-into-place; Write
			// catches copies that finish after the create event.
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				w.maybeProcess(ctx, event.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// maybeProcess segments a file if it is a book input without a result file.
func (w *Watcher) maybeProcess(ctx context.Context, path string) {
	if strings.HasSuffix(path, resultSuffix) {
		return
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" && ext != ".json" {
		return
	}

	resultPath := strings.TrimSuffix(path, filepath.Ext(path)) + resultSuffix
	if _, err := os.Stat(resultPath); err == nil {
		return // already segmented
	}

	jobID := uuid.New().String()
	log := w.logger.With("job_id", jobID, "file", filepath.Base(path))

	seg, maxWorkers := w.current()
	pages, err := w.loadPages(ctx, path, ext, maxWorkers)
	if err != nil {
		log.Warn("failed to load book", "error", err)
		return
	}

	chapters := seg.SegmentBook(ctx, pages)
	data, err := json.MarshalIndent(chapters, "", "  ")
	if err != nil {
		log.Warn("failed to marshal chapters", "error", err)
		return
	}
	if err := types.ValidateChaptersJSON(data); err != nil {
		log.Warn("result failed schema validation", "error", err)
		return
	}
	if err := os.WriteFile(resultPath, data, 0o644); err != nil {
		log.Warn("failed to write result", "error", err)
		return
	}
	log.Info("book segmented", "pages", len(pages), "chapters", len(chapters))
}

func (w *Watcher) loadPages(ctx context.Context, path, ext string, maxWorkers int) ([]types.Page, error) {
	if ext == ".json" {
		return ingest.PagesJSON(path)
	}
	res, err := ingest.PDF(ctx, ingest.Request{
		PDFPath:    path,
		MaxWorkers: maxWorkers,
		Logger:     w.logger,
	})
	if err != nil {
		return nil, err
	}
	return res.Pages, nil
}
