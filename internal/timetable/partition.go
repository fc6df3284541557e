// Package timetable groups a user's deadlines into daily, weekly and monthly
// buckets relative to a reference day.
package timetable

import (
	"time"

	"github.com/spec-kit/deadline-tracker/internal/domain"
)

// WeekHorizon is the last day offset, inclusive, that still counts as "this week".
const WeekHorizon = 7

// Entry is a deadline with its parsed due date.
type Entry struct {
	Subject  string
	DueDate  time.Time
	DaysLeft int
	Deadline domain.Deadline
}

// Due returns the due date in its on-disk form.
func (e Entry) Due() string {
	return e.DueDate.Format(domain.DateLayout)
}

// Result holds the three buckets plus the owned records that could not be dated.
type Result struct {
	Daily   []Entry
	Weekly  []Entry
	Monthly []Entry
	Skipped []domain.Deadline
}

// Partition buckets the deadlines owned by userID. A deadline can land in more
// than one bucket; every bucket keeps the input order. Records whose due date
// is not YYYY-MM-DD end up in Skipped and nowhere else.
func Partition(userID int64, deadlines []domain.Deadline, today time.Time) Result {
	day := civilDate(today)
	res := Result{
		Daily:   []Entry{},
		Weekly:  []Entry{},
		Monthly: []Entry{},
	}

	for _, d := range deadlines {
		if d.UserID != userID {
			continue
		}
		due, err := time.Parse(domain.DateLayout, d.DueDate)
		if err != nil {
			res.Skipped = append(res.Skipped, d)
			continue
		}

		entry := Entry{
			Subject:  d.Subject,
			DueDate:  due,
			DaysLeft: daysBetween(day, due),
			Deadline: d,
		}

		if entry.DaysLeft == 0 {
			res.Daily = append(res.Daily, entry)
		}
		if entry.DaysLeft >= 0 && entry.DaysLeft <= WeekHorizon {
			res.Weekly = append(res.Weekly, entry)
		}
		if due.Year() == day.Year() && due.Month() == day.Month() {
			res.Monthly = append(res.Monthly, entry)
		}
	}
	return res
}

// TodaySchedules returns the schedules owned by userID whose day string is
// exactly today's date. No date parsing is done on the stored value.
func TodaySchedules(userID int64, schedules []domain.Schedule, today time.Time) []domain.Schedule {
	key := today.Format(domain.DateLayout)
	out := make([]domain.Schedule, 0)
	for _, s := range schedules {
		if s.UserID == userID && s.Day == key {
			out = append(out, s)
		}
	}
	return out
}

// civilDate drops the clock and zone of t, keeping the calendar day as seen in t's location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole days from a to b; both must be UTC midnights.
// Unix seconds avoid the ~292 year range limit of time.Duration.
func daysBetween(a, b time.Time) int {
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60
