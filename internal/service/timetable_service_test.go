package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/deadline-tracker/internal/domain"
)

func TestTimetableService_BuildLogsSkipped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, d := range []domain.Deadline{
		{UserID: 1, Subject: "Today", DueDate: "2024-05-10"},
		{UserID: 1, Subject: "Bad", DueDate: "10/05/2024"},
		{UserID: 2, Subject: "Other user", DueDate: "2024-05-10"},
	} {
		d := d
		require.NoError(t, f.deadlines.Create(ctx, &d))
	}
	require.NoError(t, f.schedules.Create(ctx, &domain.Schedule{UserID: 1, Day: "2024-05-10", Title: "Lab"}))

	core, logs := observer.New(zap.WarnLevel)
	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	svc := NewTimetableService(TimetableDependencies{
		DeadlineRepo: f.deadlines,
		ScheduleRepo: f.schedules,
		Location:     plusTwo,
		// 23:30 UTC on the 9th is already the 10th two hours east
		Now:    func() time.Time { return time.Date(2024, 5, 9, 23, 30, 0, 0, time.UTC) },
		Logger: zap.New(core),
	})

	v, err := svc.Build(ctx, domain.User{ID: 1, Name: "Ann"})
	require.NoError(t, err)
	require.Len(t, v.Daily, 1)
	require.Equal(t, "Today", v.Daily[0].Subject)
	require.Len(t, v.Schedules, 1)
	require.Equal(t, "Ann", v.UserName)

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "10/05/2024", logs.All()[0].ContextMap()["due_date"])
}
