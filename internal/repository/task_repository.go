package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/deadline-tracker/internal/domain"
)

// TaskRepository stores to-do items.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)
}

type taskRepository struct {
	state *StateRepository
}

func NewTaskRepository(state *StateRepository) TaskRepository {
	return &taskRepository{state: state}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	return r.state.Update(ctx, func(doc *domain.Document) error {
		doc.Tasks = append(doc.Tasks, *task)
		return nil
	})
}

func (r *taskRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	doc := r.state.Read(ctx)
	out := make([]domain.Task, 0)
	for _, t := range doc.Tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}
