// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package shopping

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/goregular"
)

// ContentType is the MIME type of Render output.
const ContentType = "application/pdf"

// Filename is the attachment name used when the list is downloaded.
const Filename = "shopping_list.pdf"

// documentDate is stamped into every PDF so repeated renders are identical.
var documentDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	// ErrFontUnavailable indicates the renderer has no font data to draw with.
	ErrFontUnavailable = errors.New("font unavailable")

	// ErrUnsupportedFont indicates the font data is not a TrueType font.
	ErrUnsupportedFont = errors.New("unsupported font format")
)

// RenderError reports a failure to produce a shopping list document.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render shopping list: %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Font is a TrueType font supplied to a Renderer.
type Font struct {
	Family string
	Data   []byte
}

// DefaultFont returns the embedded Go Regular font. It covers Latin, Greek
// and Cyrillic, so ingredient names in those scripts draw correctly.
func DefaultFont() Font {
	return Font{Family: "GoRegular", Data: goregular.TTF}
}

// LoadFontFile reads a TrueType font from disk. The family name is the file
// name without its extension.
func LoadFontFile(path string) (Font, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return Font{}, &RenderError{Op: "load font", Err: fmt.Errorf("%w: %w", ErrFontUnavailable, err)}
	}

	font := Font{
		Family: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Data:   data,
	}
	if err := font.check(); err != nil {
		return Font{}, &RenderError{Op: "load font", Err: err}
	}
	return font, nil
}

// check verifies the font has a name and TrueType outlines. CFF-flavoured
// OpenType ("OTTO") is rejected because the PDF backend cannot embed it.
func (f Font) check() error {
	if f.Family == "" || len(f.Data) == 0 {
		return ErrFontUnavailable
	}
	if len(f.Data) < 4 {
		return fmt.Errorf("%w: font data too short", ErrUnsupportedFont)
	}
	switch string(f.Data[:4]) {
	case "\x00\x01\x00\x00", "true":
		return nil
	default:
		return fmt.Errorf("%w: signature %q", ErrUnsupportedFont, f.Data[:4])
	}
}

// Renderer draws shopping lists as PDF documents. It holds only immutable
// configuration and may be shared between goroutines.
type Renderer struct {
	font   Font
	layout Layout
}

// NewRenderer creates a renderer for the given font and layout. Problems with
// either are reported by Render so a misconfigured renderer fails loudly on
// use instead of producing an unreadable document.
func NewRenderer(font Font, layout Layout) *Renderer {
	return &Renderer{font: font, layout: layout}
}

// Layout returns the renderer's page geometry.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render lays out title and lines and returns the PDF bytes. An empty lines
// slice yields a single page holding only the title.
func (r *Renderer) Render(title string, lines []AggregatedLine) (out []byte, err error) {
	if err := r.font.check(); err != nil {
		return nil, &RenderError{Op: "font", Err: err}
	}
	if err := r.layout.Validate(); err != nil {
		return nil, &RenderError{Op: "layout", Err: err}
	}

	doc := r.layout.Paginate(title, lines)

	// fpdf panics on some malformed font tables instead of returning an error.
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = &RenderError{Op: "draw", Err: fmt.Errorf("pdf backend: %v", p)}
		}
	}()

	return r.draw(doc)
}

func (r *Renderer) draw(doc Document) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.PageWidth, Ht: doc.PageHeight},
	})
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetProducer("mealshare", false)
	pdf.SetTitle(doc.Lines[0].Text, true)

	pdf.AddUTF8FontFromBytes(r.font.Family, "", r.font.Data)

	page := 0
	for _, line := range doc.Lines {
		for page < line.Page {
			pdf.AddPage()
			page++
		}
		pdf.SetFont(r.font.Family, "", line.Size)
		// fpdf measures from the top edge.
		pdf.Text(line.X, doc.PageHeight-line.Y, line.Text)
	}

	if pdf.Err() {
		return nil, &RenderError{Op: "draw", Err: pdf.Error()}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Op: "output", Err: err}
	}
	return buf.Bytes(), nil
}
