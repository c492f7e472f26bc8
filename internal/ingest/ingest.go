// Package ingest handles book page extraction from PDF files.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"

	"github.com/jackzampolin/spine/internal/types"
)

// Request contains the parameters for extracting book pages.
type Request struct {
	PDFPath    string       // PDF file path
	Title      string       // Book title (optional, derived from filename if empty)
	MaxWorkers int          // Max concurrent page extractions (default 8)
	Logger     *slog.Logger // Optional logger for progress updates
}

// Result contains the pages extracted from a book.
type Result struct {
	RunID     string // Unique ID for this extraction run
	Title     string
	PageCount int
	Pages     []types.Page
}

// PDF extracts the text of every page in a PDF into engine Pages.
// pdfcpu validates the file and supplies the authoritative page count;
// text extraction fans out across a bounded worker group.
func PDF(ctx context.Context, req Request) (*Result, error) {
	log := req.Logger
	if log == nil {
		log = slog.Default()
	}
	maxWorkers := req.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 8
	}

	if _, err := os.Stat(req.PDFPath); err != nil {
		return nil, fmt.Errorf("PDF not found: %s", req.PDFPath)
	}

	pageCount, err := pageCount(req.PDFPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("PDF has no pages: %s", req.PDFPath)
	}

	title := req.Title
	if title == "" {
		title = deriveTitle(req.PDFPath)
	}

	runID := uuid.New().String()
	log.Info("starting extraction", "run_id", runID, "title", title, "pages", pageCount)

	f, reader, err := pdflib.Open(req.PDFPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pages := make([]types.Page, pageCount)
	var mu sync.Mutex // page lookup touches the reader's shared object cache

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for num := 1; num <= pageCount; num++ {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			mu.Lock()
			page := reader.Page(num)
			mu.Unlock()

			var text string
			if !page.V.IsNull() {
				// Extraction failures leave the page empty rather than
				// failing the book; the engine tolerates blank pages.
				text, _ = page.GetPlainText(nil)
			}
			pages[num-1] = types.Page{PageNumber: num, Content: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		RunID:     runID,
		Title:     title,
		PageCount: pageCount,
		Pages:     pages,
	}, nil
}

// pageCount validates the PDF with pdfcpu and returns its page count.
func pageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(f, conf)
}

// deriveTitle extracts a title from a PDF filename.
// e.g., "crusade-europe.pdf" -> "crusade-europe"
// e.g., "my-book-1.pdf" -> "my-book"
func deriveTitle(pdfPath string) string {
	base := filepath.Base(pdfPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	re := regexp.MustCompile(`-\d+$`)
	return re.ReplaceAllString(name, "")
}
