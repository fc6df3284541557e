package service

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/spec-kit/deadline-tracker/internal/domain"
	"github.com/spec-kit/deadline-tracker/internal/events"
	"github.com/spec-kit/deadline-tracker/internal/export"
	"github.com/spec-kit/deadline-tracker/internal/view"
	apperrors "github.com/spec-kit/deadline-tracker/pkg/util"
)

// ExportResult is a rendered PDF ready to be sent.
type ExportResult struct {
	Filename   string
	Content    []byte
	ArchiveKey string
}

// ExportService turns HTML, either supplied by the client or rendered from the
// user's timetable, into a PDF download.
type ExportService struct {
	exporter   *export.Exporter
	archiver   export.Archiver
	timetables *TimetableService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ExportDependencies groups requirements for the export service.
type ExportDependencies struct {
	Exporter *export.Exporter
	// Archiver is optional; without it exports are not kept.
	Archiver   export.Archiver
	Timetables *TimetableService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(deps ExportDependencies) *ExportService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		exporter:   deps.Exporter,
		archiver:   deps.Archiver,
		timetables: deps.Timetables,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// ExportHTML renders html for the given mode label. userID is zero for
// anonymous callers.
func (s *ExportService) ExportHTML(ctx context.Context, userID int64, html, mode string) (*ExportResult, error) {
	if mode == "" {
		mode = export.DefaultMode
	}

	pdf, err := s.exporter.Render(ctx, html)
	if err != nil {
		return nil, mapExportError(err)
	}

	result := &ExportResult{Filename: export.Filename(mode), Content: pdf}
	if s.archiver != nil && userID != 0 {
		key, err := s.archiver.Archive(ctx, archiveOwner(userID), result.Filename, pdf)
		if err != nil {
			// the user still gets the document
			s.logger.Warn("archive export", zap.Int64("user_id", userID), zap.Error(err))
		} else {
			result.ArchiveKey = key
		}
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventTimetableExported, userID, events.TimetableExportedPayload{
		Mode:       mode,
		Filename:   result.Filename,
		SizeBytes:  len(pdf),
		ArchiveKey: result.ArchiveKey,
	}))
	return result, nil
}

// ExportTimetable renders the user's own timetable server side and exports it.
func (s *ExportService) ExportTimetable(ctx context.Context, user domain.User, mode string) (*ExportResult, error) {
	if mode == "" {
		mode = export.DefaultMode
	}
	tv, err := s.timetables.Build(ctx, user)
	if err != nil {
		return nil, err
	}
	html, err := view.Timetable(*tv, mode)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return s.ExportHTML(ctx, user.ID, html, mode)
}

func mapExportError(err error) error {
	if errors.Is(err, export.ErrMissingContent) {
		return apperrors.NewMissingContent()
	}
	var renderErr *export.RenderError
	if errors.As(err, &renderErr) {
		return apperrors.NewRenderError(renderErr.Err)
	}
	return apperrors.NewInternalError(err)
}

func archiveOwner(userID int64) string {
	return "user-" + strconv.FormatInt(userID, 10)
}
