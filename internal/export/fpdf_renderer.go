package export

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	baseFontSize = 11.0
	fontFamily   = "DejaVu"
)

//go:embed fonts/*.ttf
var fontFS embed.FS

// fontFiles maps fpdf style strings to the embedded DejaVu faces.
var fontFiles = map[string]string{
	"":   "fonts/DejaVuSansCondensed.ttf",
	"B":  "fonts/DejaVuSansCondensed-Bold.ttf",
	"I":  "fonts/DejaVuSansCondensed-Oblique.ttf",
	"BI": "fonts/DejaVuSansCondensed-BoldOblique.ttf",
}

var headingSizes = map[atom.Atom]float64{
	atom.H1: 18, atom.H2: 15, atom.H3: 13, atom.H4: 12, atom.H5: 11, atom.H6: 11,
}

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Main: true, atom.Nav: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Table: true, atom.Tr: true,
	atom.Thead: true, atom.Tbody: true, atom.Tfoot: true, atom.Caption: true,
	atom.Blockquote: true, atom.Pre: true, atom.Hr: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

var skippedElements = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true, atom.Title: true,
	atom.Noscript: true, atom.Template: true, atom.Svg: true, atom.Iframe: true,
}

// FPDFRenderer lays out the text structure of an HTML document with fpdf.
// It supports headings, paragraphs, lists, tables and bold/italic runs; CSS is ignored.
type FPDFRenderer struct {
	pageSize string
}

func NewFPDFRenderer(pageSize string) *FPDFRenderer {
	if pageSize == "" {
		pageSize = "A4"
	}
	return &FPDFRenderer{pageSize: pageSize}
}

func (r *FPDFRenderer) Render(ctx context.Context, markup string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	pdf := fpdf.New("P", "mm", r.pageSize, "")
	if pdf.Err() {
		return nil, pdf.Error()
	}
	if err := addFonts(pdf); err != nil {
		return nil, err
	}
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetCreator("deadline-tracker", true)
	if title := documentTitle(root); title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.AddPage()
	if pdf.Err() {
		return nil, pdf.Error()
	}

	l := &layout{pdf: pdf, size: baseFontSize, lineStart: true}
	l.applyFont()
	l.walk(root)

	if pdf.Err() {
		return nil, pdf.Error()
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// addFonts registers the embedded UTF-8 faces so text needs no codepage translation.
func addFonts(pdf *fpdf.Fpdf) error {
	for style, name := range fontFiles {
		data, err := fontFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("load font %s: %w", name, err)
		}
		pdf.AddUTF8FontFromBytes(fontFamily, style, data)
	}
	if pdf.Err() {
		return pdf.Error()
	}
	return nil
}

type layout struct {
	pdf       *fpdf.Fpdf
	bold      int
	italic    int
	size      float64
	lineStart bool
	inPre     bool
}

func (l *layout) lineHeight() float64 {
	// points to millimetres, with some leading
	return l.size * 0.3528 * 1.4
}

func (l *layout) applyFont() {
	style := ""
	if l.bold > 0 {
		style += "B"
	}
	if l.italic > 0 {
		style += "I"
	}
	l.pdf.SetFont(fontFamily, style, l.size)
}

func (l *layout) newline() {
	if !l.lineStart {
		l.pdf.Ln(l.lineHeight())
		l.lineStart = true
	}
}

func (l *layout) text(s string) {
	if !l.inPre {
		s = collapseSpace(s)
		if l.lineStart {
			s = strings.TrimLeft(s, " ")
		}
	}
	if s == "" {
		return
	}
	if l.inPre {
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			if i > 0 {
				l.pdf.Ln(l.lineHeight())
			}
			l.pdf.Write(l.lineHeight(), line)
		}
		l.lineStart = strings.HasSuffix(s, "\n")
		return
	}
	l.pdf.Write(l.lineHeight(), s)
	l.lineStart = false
}

func (l *layout) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		l.text(n.Data)
		return
	case html.ElementNode:
		if skippedElements[n.DataAtom] {
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	exit := l.enter(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		l.walk(c)
	}
	exit()
}

// enter applies the element's effect and returns the function that undoes it.
func (l *layout) enter(n *html.Node) func() {
	if n.Type != html.ElementNode {
		return func() {}
	}

	a := n.DataAtom
	var undo []func()

	if blockElements[a] {
		l.newline()
		undo = append(undo, l.newline)
	}

	if (a == atom.Td || a == atom.Th) && !l.lineStart {
		l.pdf.Write(l.lineHeight(), " | ")
	}

	switch {
	case headingSizes[a] > 0:
		prev := l.size
		l.size = headingSizes[a]
		l.bold++
		l.applyFont()
		undo = append(undo, func() {
			l.size = prev
			l.bold--
			l.applyFont()
			l.pdf.Ln(1.5)
		})
	case a == atom.B || a == atom.Strong || a == atom.Th || a == atom.Dt:
		l.bold++
		l.applyFont()
		undo = append(undo, func() { l.bold--; l.applyFont() })
	case a == atom.I || a == atom.Em:
		l.italic++
		l.applyFont()
		undo = append(undo, func() { l.italic--; l.applyFont() })
	case a == atom.Br:
		l.pdf.Ln(l.lineHeight())
		l.lineStart = true
	case a == atom.Li:
		l.text("- ")
	case a == atom.Pre:
		l.inPre = true
		undo = append(undo, func() { l.inPre = false })
	case a == atom.Hr:
		left, _, right, _ := l.pdf.GetMargins()
		width, _ := l.pdf.GetPageSize()
		y := l.pdf.GetY() + 1
		l.pdf.Line(left, y, width-right, y)
		l.pdf.Ln(3)
	case a == atom.P:
		undo = append(undo, func() { l.pdf.Ln(1.5) })
	}

	return func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}
}

func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r' || b == '\f'
}

func documentTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data)
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := documentTitle(c); t != "" {
			return t
		}
	}
	return ""
}
