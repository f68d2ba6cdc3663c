package ports

import (
	"context"

	"github.com/aretw0/indicator/pkg/domain"
)

// DocumentSource defines how front ends retrieve indicator documents.
// This allows the storage layer (Loam, Memory) to be decoupled.
type DocumentSource interface {
	// Get retrieves a document by ID. Unknown IDs wrap domain.ErrTraceNotFound.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns the IDs of every document, sorted.
	List(ctx context.Context) ([]string, error)
}

// DocumentStore is a DocumentSource that front ends may also write to.
type DocumentStore interface {
	DocumentSource

	// Save stores doc under doc.ID, replacing any previous version.
	// A document without an ID fails with domain.ErrMissingID.
	Save(ctx context.Context, doc *domain.Document) error

	// Delete removes a document. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}
