// Package store defines the document store the engine persists against:
// named collections of schemaless JSON documents with get, set,
// update-by-id, and query semantics. Backends provide read-after-write
// consistency within one call chain; nothing here is transactional across
// collections.
package store

import (
	"context"
	"encoding/json"
)

// Store is the narrow persistence contract the engine depends on.
//
// Get decodes the document into doc and reports whether it existed.
// Set fully overwrites a document. Update merges the given top-level
// fields into an existing document (a no-op merge onto a missing document
// creates it). Query returns the raw documents whose top-level fields
// equal every entry in filter; a nil filter returns the whole collection.
type Store interface {
	Get(ctx context.Context, collection, id string, doc any) (bool, error)
	Set(ctx context.Context, collection, id string, doc any) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Query(ctx context.Context, collection string, filter map[string]any) ([]json.RawMessage, error)
	Close() error
}

// mergeFields applies a top-level field merge to a raw JSON document.
// Shared by the memory and sqlite backends; postgres merges natively.
func mergeFields(raw json.RawMessage, fields map[string]any) (json.RawMessage, error) {
	doc := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
	}
	for k, v := range fields {
		doc[k] = v
	}
	return json.Marshal(doc)
}

// matchesFilter reports whether a raw document's top-level fields equal
// every entry in filter. Values are compared through their JSON encoding
// so callers can filter on numbers without caring about int vs float64.
func matchesFilter(raw json.RawMessage, filter map[string]any) bool {
	if len(filter) == 0 {
		return true
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false
	}
	for k, want := range filter {
		have, ok := doc[k]
		if !ok {
			return false
		}
		wantJSON, err := json.Marshal(want)
		if err != nil {
			return false
		}
		if string(have) != string(wantJSON) {
			return false
		}
	}
	return true
}
