// Package repository persists normalized records to a document store.
// Names are unique per collection; collisions resolve by suffixing (1),
// (2), ... like the production document database does.
package repository

import (
	"context"
	"fmt"
	"time"
)

// StoredRecord is one persisted document.
type StoredRecord struct {
	Collection string
	Name       string
	PDFName    string
	Payload    []byte // the record's flattened JSON
	CreatedAt  time.Time
}

// Store is the record-store collaborator contract.
type Store interface {
	// Put persists payload under the first free name derived from
	// suggestedName and returns the name actually assigned. pdfName is
	// stored alongside for PDF preview lookup.
	Put(ctx context.Context, collection, suggestedName string, payload []byte, pdfName string) (string, error)

	// List returns a collection's records in insertion order.
	List(ctx context.Context, collection string) ([]StoredRecord, error)

	Close() error
}

// candidateName derives the nth candidate for a suggested document name.
func candidateName(suggested string, n int) string {
	if n == 0 {
		return suggested
	}
	return fmt.Sprintf("%s(%d)", suggested, n)
}
