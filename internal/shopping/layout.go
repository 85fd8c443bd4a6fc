// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package shopping

import (
	"errors"
	"fmt"
	"math"
)

// DefaultTitle is the heading drawn at the top of the first page.
const DefaultTitle = "Shopping list"

// Layout holds page geometry in PDF points. Vertical positions are measured
// from the bottom edge of the page, so item offsets decrease as the list
// grows downward.
type Layout struct {
	PageWidth  float64
	PageHeight float64

	TitleX    float64
	TitleY    float64
	TitleSize float64

	ItemX    float64
	ItemSize float64
	// StartY is the baseline of the first item on page one.
	StartY float64
	// TopY is the baseline of the first item on continuation pages.
	TopY float64
	// LineStep is the vertical distance between consecutive items.
	LineStep float64
	// BottomMargin is the lowest baseline an item may occupy.
	BottomMargin float64
}

// DefaultLayout returns an A4 layout: title at (200, 800) in 24pt, items at
// x=75 from y=750 downward in 25pt steps at 16pt.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:    595.28,
		PageHeight:   841.89,
		TitleX:       200,
		TitleY:       800,
		TitleSize:    24,
		ItemX:        75,
		ItemSize:     16,
		StartY:       750,
		TopY:         800,
		LineStep:     25,
		BottomMargin: 50,
	}
}

// Validate reports geometry that would place nothing on a page or loop
// forever while paginating.
func (l Layout) Validate() error {
	switch {
	case l.PageWidth <= 0 || l.PageHeight <= 0:
		return errors.New("page dimensions must be positive")
	case l.TitleSize <= 0 || l.ItemSize <= 0:
		return errors.New("font sizes must be positive")
	case l.LineStep <= 0:
		return errors.New("line step must be positive")
	case l.StartY > l.PageHeight || l.TopY > l.PageHeight:
		return fmt.Errorf("item start positions must be within page height %.2f", l.PageHeight)
	case l.FirstPageCapacity() < 1 || l.PageCapacity() < 1:
		return errors.New("bottom margin leaves no room for items")
	}
	return nil
}

// FirstPageCapacity is the number of items that fit below the title.
func (l Layout) FirstPageCapacity() int {
	return capacity(l.StartY, l.BottomMargin, l.LineStep)
}

// PageCapacity is the number of items that fit on a continuation page.
func (l Layout) PageCapacity() int {
	return capacity(l.TopY, l.BottomMargin, l.LineStep)
}

func capacity(start, bottom, step float64) int {
	if step <= 0 || start < bottom {
		return 0
	}
	return int(math.Floor((start-bottom)/step)) + 1
}

// TextLine is a single positioned string in a Document.
type TextLine struct {
	Page int     `json:"page"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
	Text string  `json:"text"`
}

// Document is the laid-out shopping list. Lines[0] is always the title;
// the remaining lines are numbered items in emission order. Pages are
// numbered from 1.
type Document struct {
	PageWidth  float64    `json:"page_width"`
	PageHeight float64    `json:"page_height"`
	PageCount  int        `json:"page_count"`
	Lines      []TextLine `json:"lines"`
}

// Items returns the numbered lines, excluding the title.
func (d Document) Items() []TextLine {
	if len(d.Lines) == 0 {
		return nil
	}
	return d.Lines[1:]
}

// PageItems returns the numbered lines placed on the given page.
func (d Document) PageItems(page int) []TextLine {
	var items []TextLine
	for _, line := range d.Items() {
		if line.Page == page {
			items = append(items, line)
		}
	}
	return items
}

// FormatLine renders one list entry as "{index}. {name} - {amount}, {unit}".
func FormatLine(index int, line AggregatedLine) string {
	return fmt.Sprintf("%d. %s - %d, %s", index, line.Name, line.TotalAmount, line.Unit)
}

// Paginate places the title and the numbered lines onto pages. When the next
// baseline would fall below the bottom margin a new page is started at TopY;
// numbering is never reset.
func (l Layout) Paginate(title string, lines []AggregatedLine) Document {
	doc := Document{
		PageWidth:  l.PageWidth,
		PageHeight: l.PageHeight,
		PageCount:  1,
		Lines:      make([]TextLine, 0, len(lines)+1),
	}
	doc.Lines = append(doc.Lines, TextLine{
		Page: 1,
		X:    l.TitleX,
		Y:    l.TitleY,
		Size: l.TitleSize,
		Text: title,
	})

	page, y := 1, l.StartY
	for i, line := range lines {
		if y < l.BottomMargin {
			page++
			y = l.TopY
		}
		doc.Lines = append(doc.Lines, TextLine{
			Page: page,
			X:    l.ItemX,
			Y:    y,
			Size: l.ItemSize,
			Text: FormatLine(i+1, line),
		})
		y -= l.LineStep
	}
	doc.PageCount = page

	return doc
}
