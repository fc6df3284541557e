package timetable

import (
	"time"

	"github.com/spec-kit/deadline-tracker/internal/domain"
)

// View is everything the timetable page shows for one user on one day.
type View struct {
	UserID    int64
	UserName  string
	Email     string
	Today     time.Time
	Daily     []Entry
	Weekly    []Entry
	Monthly   []Entry
	Schedules []domain.Schedule
}

// Build assembles the view for user from the raw records.
func Build(user domain.User, deadlines []domain.Deadline, schedules []domain.Schedule, today time.Time) (View, []domain.Deadline) {
	res := Partition(user.ID, deadlines, today)
	return View{
		UserID:    user.ID,
		UserName:  user.Name,
		Email:     user.Email,
		Today:     today,
		Daily:     res.Daily,
		Weekly:    res.Weekly,
		Monthly:   res.Monthly,
		Schedules: TodaySchedules(user.ID, schedules, today),
	}, res.Skipped
}
