package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// chapterListSchema is the canonical schema for serialized segmentation
// results. Consumers downstream (enrichment, export) rely on this shape.
const chapterListSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "number": {"type": "integer", "minimum": 1},
      "title": {"type": "string"},
      "start_page": {"type": "integer", "minimum": 1},
      "end_page": {"type": "integer", "minimum": 1},
      "detection_method": {
        "type": "string",
        "enum": ["regex_chapter", "regex_item", "regex_numeric", "topic_boundary", "synthetic"]
      }
    },
    "required": ["number", "title", "start_page", "end_page", "detection_method"],
    "additionalProperties": false
  }
}`

var compiledChapterSchema = jsonschema.MustCompileString("chapters.json", chapterListSchema)

// ValidateChaptersJSON checks serialized chapter output against the canonical
// schema. Used before results are written anywhere a downstream consumer
// might read them.
func ValidateChaptersJSON(data []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse chapter JSON: %w", err)
	}
	if err := compiledChapterSchema.Validate(doc); err != nil {
		return fmt.Errorf("chapter JSON failed schema validation: %w", err)
	}
	return nil
}
