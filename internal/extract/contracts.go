// Package extract adapts the extraction service's entity stream into the
// flat field map and table-row sequences the normalization pipeline runs on.
package extract

import "context"

// RawEntity is one extracted field or table instance as reported by the
// entity-extraction service. Read-only to this module.
type RawEntity struct {
	Type            string
	MentionText     string
	NormalizedValue string  // service-suggested text; may be empty
	Confidence      float64 // [0,1]
	Properties      []RawEntity
}

// Field is one flattened scalar extraction: the raw value chosen for the
// entity type plus the service confidence (rounded to 2 decimals).
type Field struct {
	Value      string
	Confidence float64
}

// Service is the external extraction collaborator: document bytes in,
// entity stream out. Network, batching and polling live behind it.
type Service interface {
	Extract(ctx context.Context, documentBytes []byte, mimeType string) ([]RawEntity, error)
}
