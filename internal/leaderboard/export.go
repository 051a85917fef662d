package leaderboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

const (
	// ExportFormat identifies quizmat export documents.
	ExportFormat = "quizmat-leaderboard"

	// ExportVersion is the document version written by Export. Imports
	// accept any version with the same major.
	ExportVersion = "v1.0.0"
)

// ErrIncompatibleExport is returned when a document has a different format
// or an unsupported major version.
var ErrIncompatibleExport = errors.New("incompatible leaderboard export")

// Document is the self-describing export envelope.
type Document struct {
	Format     string         `json:"format"`
	Version    string         `json:"version"`
	ExportedAt time.Time      `json:"exportedAt"`
	Records    []PlayerRecord `json:"records"`
}

var documentSchema = fmt.Sprintf(`{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["format", "version", "records"],
  "properties": {
    "format": {"type": "string"},
    "version": {"type": "string"},
    "exportedAt": {"type": "string"},
    "records": {"type": "array", "items": {"$ref": "#/$defs/record"}}
  },
  "$defs": {
    "record": {
      "type": "object",
      "required": ["id", "name", "score", "timeSpentSeconds", "timestamp"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string", "minLength": 1},
        "score": {"type": "integer", "minimum": 0},
        "timeSpentSeconds": {"type": "integer", "minimum": 0, "maximum": %d},
        "timestamp": {"type": "integer", "minimum": 0}
      }
    }
  }
}`, MaxTimeSpentSeconds)

const recordsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {"$ref": "document.json#/$defs/record"}
}`

var (
	schemaOnce     sync.Once
	compiledDoc    *jsonschema.Schema
	compiledLegacy *jsonschema.Schema
	schemaErr      error
)

func schemas() (*jsonschema.Schema, *jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for url, src := range map[string]string{
			"schema://quizmat/document.json": documentSchema,
			"schema://quizmat/records.json":  recordsSchema,
		} {
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(src)))
			if err != nil {
				schemaErr = fmt.Errorf("parse schema %s: %w", url, err)
				return
			}
			if err := c.AddResource(url, doc); err != nil {
				schemaErr = fmt.Errorf("add schema %s: %w", url, err)
				return
			}
		}
		if compiledDoc, schemaErr = c.Compile("schema://quizmat/document.json"); schemaErr != nil {
			return
		}
		compiledLegacy, schemaErr = c.Compile("schema://quizmat/records.json")
	})
	return compiledDoc, compiledLegacy, schemaErr
}

// Export writes records as a versioned export document.
func Export(w io.Writer, records []PlayerRecord, now time.Time) error {
	if records == nil {
		records = []PlayerRecord{}
	}
	doc := Document{
		Format:     ExportFormat,
		Version:    ExportVersion,
		ExportedAt: now.UTC(),
		Records:    records,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// Import reads either an export document or a bare JSON array of records,
// the shape the browser version of the quiz kept in local storage.
func Import(r io.Reader) ([]PlayerRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse import: %w", err)
	}

	docSchema, legacySchema, err := schemas()
	if err != nil {
		return nil, err
	}

	var records []PlayerRecord
	switch parsed.(type) {
	case []any:
		if err := legacySchema.Validate(parsed); err != nil {
			return nil, fmt.Errorf("validate records: %w", err)
		}
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}

	case map[string]any:
		if err := docSchema.Validate(parsed); err != nil {
			return nil, fmt.Errorf("validate export: %w", err)
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode export: %w", err)
		}
		if err := checkCompatible(doc); err != nil {
			return nil, err
		}
		records = doc.Records

	default:
		return nil, fmt.Errorf("%w: expected an object or an array", ErrIncompatibleExport)
	}

	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return records, nil
}

func checkCompatible(doc Document) error {
	if doc.Format != ExportFormat {
		return fmt.Errorf("%w: format %q", ErrIncompatibleExport, doc.Format)
	}
	if !semver.IsValid(doc.Version) {
		return fmt.Errorf("%w: invalid version %q", ErrIncompatibleExport, doc.Version)
	}
	if semver.Major(doc.Version) != semver.Major(ExportVersion) {
		return fmt.Errorf("%w: version %s, want %s.x", ErrIncompatibleExport, doc.Version, semver.Major(ExportVersion))
	}
	return nil
}
