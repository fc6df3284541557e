package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/deadline-tracker/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func subjects(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Subject)
	}
	return out
}

func dl(userID int64, subject, due string) domain.Deadline {
	return domain.Deadline{UserID: userID, Subject: subject, DueDate: due}
}

func TestPartition_TodayIsInAllBuckets(t *testing.T) {
	for _, today := range []string{"2024-01-01", "2024-02-29", "2024-12-31", "1999-06-15"} {
		res := Partition(1, []domain.Deadline{dl(1, "x", today)}, day(today))
		require.Equal(t, []string{"x"}, subjects(res.Daily), today)
		require.Equal(t, []string{"x"}, subjects(res.Weekly), today)
		require.Equal(t, []string{"x"}, subjects(res.Monthly), today)
		require.Equal(t, 0, res.Weekly[0].DaysLeft)
	}
}

func TestPartition_WeekBoundaries(t *testing.T) {
	today := day("2024-05-10")
	deadlines := []domain.Deadline{
		dl(1, "plus7", "2024-05-17"),
		dl(1, "plus8", "2024-05-18"),
		dl(1, "minus1", "2024-05-09"),
	}

	res := Partition(1, deadlines, today)
	require.Equal(t, []string{"plus7"}, subjects(res.Weekly))
	require.Empty(t, res.Daily)
	// all three are in May
	require.Equal(t, []string{"plus7", "plus8", "minus1"}, subjects(res.Monthly))
}

func TestPartition_YesterdayInPreviousMonth(t *testing.T) {
	res := Partition(1, []domain.Deadline{dl(1, "y", "2024-04-30")}, day("2024-05-01"))
	require.Empty(t, res.Daily)
	require.Empty(t, res.Weekly)
	require.Empty(t, res.Monthly)
}

func TestPartition_WeekSpansMonthAndYear(t *testing.T) {
	res := Partition(1, []domain.Deadline{dl(1, "ny", "2025-01-03")}, day("2024-12-29"))
	require.Equal(t, []string{"ny"}, subjects(res.Weekly))
	require.Equal(t, 5, res.Weekly[0].DaysLeft)
	require.Empty(t, res.Monthly)
}

func TestPartition_SameMonthDifferentYearIsNotMonthly(t *testing.T) {
	res := Partition(1, []domain.Deadline{dl(1, "old", "2023-05-10")}, day("2024-05-10"))
	require.Empty(t, res.Monthly)
	require.Empty(t, res.Weekly)
}

func TestPartition_UnparsableDatesAreSkipped(t *testing.T) {
	deadlines := []domain.Deadline{
		dl(1, "bad", "10/05/2024"),
		dl(1, "empty", ""),
		dl(1, "impossible", "2024-02-30"),
		dl(1, "good", "2024-05-10"),
	}

	res := Partition(1, deadlines, day("2024-05-10"))
	require.Equal(t, []string{"good"}, subjects(res.Daily))
	require.Equal(t, []string{"good"}, subjects(res.Weekly))
	require.Equal(t, []string{"good"}, subjects(res.Monthly))
	require.Len(t, res.Skipped, 3)
}

func TestPartition_FiltersByOwnerAndKeepsInputOrder(t *testing.T) {
	deadlines := []domain.Deadline{
		dl(1, "c", "2024-05-14"),
		dl(2, "other", "2024-05-10"),
		dl(1, "a", "2024-05-11"),
		dl(1, "b", "2024-05-10"),
	}

	res := Partition(1, deadlines, day("2024-05-10"))
	require.Equal(t, []string{"c", "a", "b"}, subjects(res.Weekly))
	require.Equal(t, []string{"b"}, subjects(res.Daily))
	require.Empty(t, res.Skipped)
}

func TestPartition_OtherUsersBadDatesAreIgnored(t *testing.T) {
	res := Partition(1, []domain.Deadline{dl(2, "x", "garbage")}, day("2024-05-10"))
	require.Empty(t, res.Skipped)
}

func TestPartition_UsesCalendarDayOfToday(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2024-05-10 23:30 local is 13:30 UTC of the same day; late evening must not shift the day
	today := time.Date(2024, 5, 10, 23, 30, 0, 0, loc)

	res := Partition(1, []domain.Deadline{dl(1, "x", "2024-05-10"), dl(1, "y", "2024-05-11")}, today)
	require.Equal(t, []string{"x"}, subjects(res.Daily))
	require.Equal(t, 1, res.Weekly[1].DaysLeft)
}

func TestPartition_FarDatesDoNotOverflow(t *testing.T) {
	res := Partition(1, []domain.Deadline{dl(1, "ancient", "0001-01-01")}, day("2024-05-10"))
	require.Empty(t, res.Weekly)
	require.Empty(t, res.Skipped)
}

func TestEntry_Due(t *testing.T) {
	res := Partition(1, []domain.Deadline{dl(1, "x", "2024-05-10")}, day("2024-05-10"))
	require.Equal(t, "2024-05-10", res.Daily[0].Due())
}

func TestTodaySchedules_ExactStringMatch(t *testing.T) {
	schedules := []domain.Schedule{
		{UserID: 1, Day: "2024-05-10", Title: "lecture"},
		{UserID: 1, Day: "2024-5-10", Title: "unpadded"},
		{UserID: 1, Day: "2024-05-10T09:00:00", Title: "timestamp"},
		{UserID: 2, Day: "2024-05-10", Title: "other user"},
		{UserID: 1, Day: "2024-05-11", Title: "tomorrow"},
	}

	got := TodaySchedules(1, schedules, day("2024-05-10"))
	require.Len(t, got, 1)
	require.Equal(t, "lecture", got[0].Title)
}

func TestTodaySchedules_NoneIsEmptySlice(t *testing.T) {
	got := TodaySchedules(1, nil, day("2024-05-10"))
	require.NotNil(t, got)
	require.Empty(t, got)
}
