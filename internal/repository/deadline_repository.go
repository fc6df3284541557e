package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/deadline-tracker/internal/domain"
)

// DeadlineRepository stores dated deadlines.
type DeadlineRepository interface {
	Create(ctx context.Context, deadline *domain.Deadline) error
	// List returns every deadline in stored order; ownership filtering is the caller's job.
	List(ctx context.Context) ([]domain.Deadline, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Deadline, error)
}

type deadlineRepository struct {
	state *StateRepository
}

func NewDeadlineRepository(state *StateRepository) DeadlineRepository {
	return &deadlineRepository{state: state}
}

func (r *deadlineRepository) Create(ctx context.Context, deadline *domain.Deadline) error {
	if deadline.ID == "" {
		deadline.ID = uuid.NewString()
	}
	return r.state.Update(ctx, func(doc *domain.Document) error {
		doc.Deadlines = append(doc.Deadlines, *deadline)
		return nil
	})
}

func (r *deadlineRepository) List(ctx context.Context) ([]domain.Deadline, error) {
	return r.state.Read(ctx).Deadlines, nil
}

func (r *deadlineRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Deadline, error) {
	doc := r.state.Read(ctx)
	out := make([]domain.Deadline, 0)
	for _, d := range doc.Deadlines {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}
