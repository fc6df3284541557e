package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/deadline-tracker/internal/domain"
	"github.com/spec-kit/deadline-tracker/internal/events"
	"github.com/spec-kit/deadline-tracker/internal/repository"
	apperrors "github.com/spec-kit/deadline-tracker/pkg/util"
)

// Overview is the signed in user's tasks and deadlines.
type Overview struct {
	Tasks     []domain.Task
	Deadlines []domain.Deadline
}

// PlannerService manages a user's tasks, deadlines and schedules.
type PlannerService struct {
	tasks      repository.TaskRepository
	deadlines  repository.DeadlineRepository
	schedules  repository.ScheduleRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PlannerDependencies groups repositories for the planner service.
type PlannerDependencies struct {
	TaskRepo     repository.TaskRepository
	DeadlineRepo repository.DeadlineRepository
	ScheduleRepo repository.ScheduleRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewPlannerService constructs the service.
func NewPlannerService(deps PlannerDependencies) *PlannerService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		tasks:      deps.TaskRepo,
		deadlines:  deps.DeadlineRepo,
		schedules:  deps.ScheduleRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Overview returns everything the user has on their list.
func (s *PlannerService) Overview(ctx context.Context, userID int64) (*Overview, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	deadlines, err := s.deadlines.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Overview{Tasks: tasks, Deadlines: deadlines}, nil
}

func (s *PlannerService) CreateTask(ctx context.Context, userID int64, title string, completed bool) (*domain.Task, error) {
	task := &domain.Task{UserID: userID, Title: title, Completed: completed}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return task, nil
}

func (s *PlannerService) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tasks, nil
}

// CreateDeadline stores a deadline. dueDate is expected in YYYY-MM-DD form;
// callers validate it before getting here.
func (s *PlannerService) CreateDeadline(ctx context.Context, userID int64, subject, dueDate string) (*domain.Deadline, error) {
	deadline := &domain.Deadline{UserID: userID, Subject: subject, DueDate: dueDate}
	if err := s.deadlines.Create(ctx, deadline); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventDeadlineCreated, userID, events.DeadlineCreatedPayload{
		DeadlineID: deadline.ID,
		Subject:    deadline.Subject,
		DueDate:    deadline.DueDate,
	}))
	return deadline, nil
}

func (s *PlannerService) ListDeadlines(ctx context.Context, userID int64) ([]domain.Deadline, error) {
	deadlines, err := s.deadlines.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return deadlines, nil
}

func (s *PlannerService) CreateSchedule(ctx context.Context, schedule domain.Schedule) (*domain.Schedule, error) {
	if err := s.schedules.Create(ctx, &schedule); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &schedule, nil
}

func (s *PlannerService) ListSchedules(ctx context.Context, userID int64) ([]domain.Schedule, error) {
	schedules, err := s.schedules.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return schedules, nil
}
