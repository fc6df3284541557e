package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/deadline-tracker/internal/domain"
	"github.com/spec-kit/deadline-tracker/internal/events"
	"github.com/spec-kit/deadline-tracker/internal/export"
	apperrors "github.com/spec-kit/deadline-tracker/pkg/util"
)

func newExportService(f *fixture, r export.Renderer, a export.Archiver) *ExportService {
	timetables := NewTimetableService(TimetableDependencies{
		DeadlineRepo: f.deadlines,
		ScheduleRepo: f.schedules,
		Location:     time.UTC,
		Now:          func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) },
	})
	return NewExportService(ExportDependencies{
		Exporter:   export.NewExporter(r),
		Archiver:   a,
		Timetables: timetables,
		Dispatcher: f.dispatcher,
	})
}

func TestExportService_ExportHTML(t *testing.T) {
	f := newFixture(t)
	svc := newExportService(f, &stubRenderer{out: []byte("%PDF-1.4")}, nil)

	res, err := svc.ExportHTML(context.Background(), 0, "<p>hi</p>", "")
	require.NoError(t, err)
	require.Equal(t, "timetable_daily.pdf", res.Filename)
	require.Equal(t, []byte("%PDF-1.4"), res.Content)
	require.Empty(t, res.ArchiveKey)

	ev := f.dispatcher.last()
	require.Equal(t, events.EventTimetableExported, ev.Type)
	require.Equal(t, 8, ev.Payload.(events.TimetableExportedPayload).SizeBytes)
}

func TestExportService_ErrorMapping(t *testing.T) {
	f := newFixture(t)

	_, err := newExportService(f, &stubRenderer{}, nil).ExportHTML(context.Background(), 0, "", "weekly")
	de := apperrors.ToDomainError(err)
	require.Equal(t, "MISSING_CONTENT", de.Code)
	require.Equal(t, "HTML content missing", de.Message)

	_, err = newExportService(f, &stubRenderer{err: errBoom}, nil).ExportHTML(context.Background(), 0, "<p>x</p>", "")
	de = apperrors.ToDomainError(err)
	require.Equal(t, "RENDER_ERROR", de.Code)
	require.Equal(t, "Error generating PDF: boom", de.Message)
}

func TestExportService_ArchivesForSignedInUsers(t *testing.T) {
	f := newFixture(t)
	archiver := &stubArchiver{key: "exports"}
	svc := newExportService(f, &stubRenderer{out: []byte("pdf")}, archiver)

	res, err := svc.ExportHTML(context.Background(), 7, "<p>x</p>", "monthly")
	require.NoError(t, err)
	require.Equal(t, "exports/timetable_monthly.pdf", res.ArchiveKey)
	require.Equal(t, "user-7", archiver.owner)

	archiver.err = errBoom
	res, err = svc.ExportHTML(context.Background(), 7, "<p>x</p>", "monthly")
	require.NoError(t, err)
	require.Empty(t, res.ArchiveKey)
}

func TestExportService_ExportTimetable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.deadlines.Create(ctx, &domain.Deadline{UserID: 1, Subject: "Maths", DueDate: "2024-05-12"}))

	renderer := &stubRenderer{out: []byte("pdf")}
	svc := newExportService(f, renderer, nil)

	res, err := svc.ExportTimetable(ctx, domain.User{ID: 1, Name: "Ann"}, "weekly")
	require.NoError(t, err)
	require.Equal(t, "timetable_weekly.pdf", res.Filename)
	require.True(t, strings.Contains(renderer.last, "Maths"))
	require.True(t, strings.Contains(renderer.last, "Timetable for Ann"))
}
