package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/spine/internal/ingest"
	"github.com/jackzampolin/spine/internal/types"
)

var (
	segmentTitle string
	segmentOut   string
)

var segmentCmd = &cobra.Command{
	Use:   "segment <book.pdf|pages.json>",
	Short: "Segment a book into chapters",
	Long: `Segment a book into chapters.

The input is either a PDF (pages are extracted first) or a JSON file of
pre-extracted pages: an array of {"page_number": N, "content": "..."}.

Examples:
  spine segment book.pdf                   # JSON chapters to stdout
  spine segment book.pdf -o yaml           # YAML output
  spine segment pages.json --out chapters.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cm, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := cm.Get()

		seg, err := newSegmenter(cfg, logger)
		if err != nil {
			return err
		}

		path := args[0]
		var pages []types.Page
		if strings.EqualFold(filepath.Ext(path), ".json") {
			pages, err = ingest.PagesJSON(path)
			if err != nil {
				return err
			}
		} else {
			res, err := ingest.PDF(ctx, ingest.Request{
				PDFPath:    path,
				Title:      segmentTitle,
				MaxWorkers: cfg.Extract.MaxWorkers,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			pages = res.Pages
		}

		chapters := seg.SegmentBook(ctx, pages)
		return writeChapters(chapters)
	},
}

func init() {
	segmentCmd.Flags().StringVar(&segmentTitle, "title", "", "book title (default: derived from filename)")
	segmentCmd.Flags().StringVar(&segmentOut, "out", "", "write result to file instead of stdout")
}

// writeChapters serializes chapters in the selected output format. JSON
// output is checked against the canonical schema before it is written.
func writeChapters(chapters []types.Chapter) error {
	var (
		data []byte
		err  error
	)
	switch outputFormat {
	case "yaml":
		data, err = yaml.Marshal(chapters)
	case "json":
		data, err = json.MarshalIndent(chapters, "", "  ")
		if err == nil {
			err = types.ValidateChaptersJSON(data)
		}
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
	if err != nil {
		return err
	}

	if segmentOut != "" {
		return os.WriteFile(segmentOut, append(data, '\n'), 0o644)
	}
	fmt.Println(string(data))
	return nil
}
