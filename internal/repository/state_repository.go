package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/deadline-tracker/internal/domain"
	"github.com/spec-kit/deadline-tracker/internal/persistence"
)

// StateRepository is the single access point to the persisted document.
// Reads never fail: a missing or unreadable document reads as empty state.
// Writes are serialized so read-modify-write cycles cannot interleave.
type StateRepository struct {
	store  persistence.Store
	logger *zap.Logger
	mu     sync.Mutex
}

// NewStateRepository wraps a store.
func NewStateRepository(store persistence.Store, logger *zap.Logger) *StateRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateRepository{store: store, logger: logger}
}

// Read loads the current document, substituting an empty one on failure.
func (r *StateRepository) Read(ctx context.Context) *domain.Document {
	doc, err := r.store.Load(ctx)
	if err == nil {
		return doc
	}
	if errors.Is(err, persistence.ErrNoDocument) {
		r.logger.Debug("no stored document; starting empty")
	} else {
		r.logger.Warn("stored document unreadable; treating as empty", zap.Error(err))
	}
	return domain.NewDocument()
}

// Update loads the document, applies fn and saves the result. If fn returns an
// error nothing is written and the error is returned unchanged.
func (r *StateRepository) Update(ctx context.Context, fn func(doc *domain.Document) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.Read(ctx)
	if err := fn(doc); err != nil {
		return err
	}
	if err := r.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}
