// Package export turns an HTML string into PDF bytes.
//
// The package knows nothing about timetables or templates: callers hand it
// finished markup and get a document back. The actual layout work is done by a
// Renderer; Exporter only guards the contract around it.
package export

import (
	"context"
	"errors"
	"fmt"
	"mime"
)

// DefaultMode is used when the caller does not name the exported view.
const DefaultMode = "daily"

// ContentType of every exported document.
const ContentType = "application/pdf"

// ErrMissingContent is returned when there is no markup to render.
var ErrMissingContent = errors.New("html content missing")

// RenderError wraps any failure of the rendering engine.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Renderer converts markup into a PDF.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Exporter validates input and isolates callers from renderer faults.
type Exporter struct {
	renderer Renderer
}

func NewExporter(renderer Renderer) *Exporter {
	return &Exporter{renderer: renderer}
}

// Render returns the PDF for html. Errors are either ErrMissingContent or *RenderError.
func (e *Exporter) Render(ctx context.Context, html string) (pdf []byte, err error) {
	if html == "" {
		return nil, ErrMissingContent
	}

	defer func() {
		if r := recover(); r != nil {
			pdf = nil
			err = &RenderError{Err: fmt.Errorf("renderer panic: %v", r)}
		}
	}()

	out, err := e.renderer.Render(ctx, html)
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	if len(out) == 0 {
		return nil, &RenderError{Err: errors.New("renderer produced an empty document")}
	}
	return out, nil
}

// Filename is the suggested download name for a mode label. The label is not validated.
func Filename(mode string) string {
	if mode == "" {
		mode = DefaultMode
	}
	return "timetable_" + mode + ".pdf"
}

// ContentDisposition builds an inline disposition header value for filename,
// quoting or encoding it as needed.
func ContentDisposition(filename string) string {
	if v := mime.FormatMediaType("inline", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "inline"
}
