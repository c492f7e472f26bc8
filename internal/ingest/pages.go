package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackzampolin/spine/internal/types"
)

// PagesJSON loads pre-extracted pages from a JSON file: an array of
// {"page_number": N, "content": "..."} objects. Used when extraction ran
// elsewhere in the pipeline.
func PagesJSON(path string) ([]types.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages file: %w", err)
	}

	var pages []types.Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("failed to parse pages file %s: %w", path, err)
	}

	for i, p := range pages {
		if p.PageNumber < 1 {
			return nil, fmt.Errorf("pages file %s: entry %d has invalid page_number %d", path, i, p.PageNumber)
		}
	}
	return pages, nil
}
