package persistence

import (
	"context"
	"errors"

	"github.com/spec-kit/deadline-tracker/internal/domain"
)

// ErrNoDocument is returned by Load when nothing has been saved yet.
var ErrNoDocument = errors.New("no stored document")

// Store reads and writes the whole application document. Implementations do no
// locking; callers serialize writers.
type Store interface {
	Load(ctx context.Context) (*domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) error
}
