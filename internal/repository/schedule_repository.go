package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/deadline-tracker/internal/domain"
)

// ScheduleRepository stores day plan entries.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) error
	List(ctx context.Context) ([]domain.Schedule, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Schedule, error)
}

type scheduleRepository struct {
	state *StateRepository
}

func NewScheduleRepository(state *StateRepository) ScheduleRepository {
	return &scheduleRepository{state: state}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	return r.state.Update(ctx, func(doc *domain.Document) error {
		doc.Schedules = append(doc.Schedules, *schedule)
		return nil
	})
}

func (r *scheduleRepository) List(ctx context.Context) ([]domain.Schedule, error) {
	return r.state.Read(ctx).Schedules, nil
}

func (r *scheduleRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Schedule, error) {
	doc := r.state.Read(ctx)
	out := make([]domain.Schedule, 0)
	for _, s := range doc.Schedules {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}
