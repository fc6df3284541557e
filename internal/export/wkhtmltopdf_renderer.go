package export

import (
	"context"
	"strings"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// WkhtmltopdfRenderer shells out to the wkhtmltopdf binary, which supports CSS
// and images at the cost of an external dependency.
type WkhtmltopdfRenderer struct {
	pageSize string
}

// NewWkhtmltopdfRenderer fails when the binary cannot be located.
func NewWkhtmltopdfRenderer(binPath, pageSize string) (*WkhtmltopdfRenderer, error) {
	if binPath != "" {
		wkhtmltopdf.SetPath(binPath)
	}
	if _, err := wkhtmltopdf.NewPDFGenerator(); err != nil {
		return nil, err
	}
	if pageSize == "" {
		pageSize = wkhtmltopdf.PageSizeA4
	}
	return &WkhtmltopdfRenderer{pageSize: pageSize}, nil
}

func (r *WkhtmltopdfRenderer) Render(ctx context.Context, markup string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, err
	}
	pdfg.PageSize.Set(r.pageSize)
	pdfg.Quiet.Set(true)
	pdfg.AddPage(wkhtmltopdf.NewPageReader(strings.NewReader(markup)))

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, err
	}
	return pdfg.Bytes(), nil
}
