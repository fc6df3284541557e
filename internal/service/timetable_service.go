package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/deadline-tracker/internal/domain"
	"github.com/spec-kit/deadline-tracker/internal/repository"
	"github.com/spec-kit/deadline-tracker/internal/timetable"
	apperrors "github.com/spec-kit/deadline-tracker/pkg/util"
)

// TimetableService assembles the timetable for the signed in user.
type TimetableService struct {
	deadlines repository.DeadlineRepository
	schedules repository.ScheduleRepository
	location  *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// TimetableDependencies groups requirements for the timetable service.
type TimetableDependencies struct {
	DeadlineRepo repository.DeadlineRepository
	ScheduleRepo repository.ScheduleRepository
	// Location decides which calendar day "today" is. Defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *zap.Logger
}

// NewTimetableService constructs the service.
func NewTimetableService(deps TimetableDependencies) *TimetableService {
	svc := &TimetableService{
		deadlines: deps.DeadlineRepo,
		schedules: deps.ScheduleRepo,
		location:  deps.Location,
		now:       deps.Now,
		logger:    deps.Logger,
	}
	if svc.location == nil {
		svc.location = time.Local
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Today is the current date in the service location.
func (s *TimetableService) Today() time.Time {
	return s.now().In(s.location)
}

// Build partitions the user's deadlines around today. Records with bad dates
// are left out and logged.
func (s *TimetableService) Build(ctx context.Context, user domain.User) (*timetable.View, error) {
	deadlines, err := s.deadlines.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	schedules, err := s.schedules.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	view, skipped := timetable.Build(user, deadlines, schedules, s.Today())
	for _, d := range skipped {
		s.logger.Warn("skipping deadline with unparsable due date",
			zap.Int64("user_id", user.ID),
			zap.String("deadline_id", d.ID),
			zap.String("due_date", d.DueDate))
	}
	return &view, nil
}
