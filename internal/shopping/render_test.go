// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package shopping

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// pageCount counts page objects in an uncompressed PDF object table.
func pageCount(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page\n"))
}

func TestRender_EmptyListIsTitleOnly(t *testing.T) {
	t.Parallel()

	r := NewRenderer(DefaultFont(), DefaultLayout())
	out, err := r.Render(DefaultTitle, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", out[:min(len(out), 16)])
	}
	if got := pageCount(out); got != 1 {
		t.Errorf("page count = %d, want 1", got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	lines := []AggregatedLine{
		{Name: "Salt", Unit: "g", TotalAmount: 7},
		{Name: "Sugar", Unit: "g", TotalAmount: 3},
		{Name: "Сметана", Unit: "мл", TotalAmount: 200},
	}
	r := NewRenderer(DefaultFont(), DefaultLayout())

	first, err := r.Render(DefaultTitle, lines)
	if err != nil {
		t.Fatalf("first Render() error = %v", err)
	}
	second, err := r.Render(DefaultTitle, lines)
	if err != nil {
		t.Fatalf("second Render() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Render() output differs between identical calls")
	}
	// Streams stay zlib-compressed; determinism does not depend on raw streams.
	if !bytes.Contains(first, []byte("/FlateDecode")) {
		t.Error("Render() output has no compressed streams")
	}

	other, err := NewRenderer(DefaultFont(), DefaultLayout()).Render(DefaultTitle, lines)
	if err != nil {
		t.Fatalf("Render() on new renderer error = %v", err)
	}
	if !bytes.Equal(first, other) {
		t.Error("Render() output differs between renderers with identical configuration")
	}
}

func TestRender_ConcurrentCallsAgree(t *testing.T) {
	t.Parallel()

	r := NewRenderer(DefaultFont(), DefaultLayout())
	lines := distinctLines(12)
	want, err := r.Render(DefaultTitle, lines)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Render(DefaultTitle, lines)
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(got, want) {
				errs <- errors.New("concurrent render produced different bytes")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestRender_PageBreaks(t *testing.T) {
	t.Parallel()

	l := thirtyPerPage()
	r := NewRenderer(DefaultFont(), l)

	out, err := r.Render(DefaultTitle, distinctLines(35))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := pageCount(out); got != 2 {
		t.Errorf("page count = %d, want 2", got)
	}
}

func TestRender_FontErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		font    Font
		wantErr error
	}{
		{"no data", Font{Family: "Missing"}, ErrFontUnavailable},
		{"no family", Font{Data: DefaultFont().Data}, ErrFontUnavailable},
		{"short data", Font{Family: "Tiny", Data: []byte{0x00}}, ErrUnsupportedFont},
		{"cff outlines", Font{Family: "Cff", Data: []byte("OTTO\x00\x00\x00\x00")}, ErrUnsupportedFont},
		{"not a font", Font{Family: "Text", Data: []byte("hello world")}, ErrUnsupportedFont},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := NewRenderer(tt.font, DefaultLayout()).Render(DefaultTitle, nil)
			if out != nil {
				t.Errorf("Render() returned %d bytes on failure", len(out))
			}
			var renderErr *RenderError
			if !errors.As(err, &renderErr) {
				t.Fatalf("Render() error = %v, want *RenderError", err)
			}
			if renderErr.Op != "font" {
				t.Errorf("RenderError.Op = %q, want font", renderErr.Op)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Render() error = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestRender_InvalidLayout(t *testing.T) {
	t.Parallel()

	l := DefaultLayout()
	l.LineStep = 0

	_, err := NewRenderer(DefaultFont(), l).Render(DefaultTitle, distinctLines(2))
	var renderErr *RenderError
	if !errors.As(err, &renderErr) || renderErr.Op != "layout" {
		t.Errorf("Render() error = %v, want layout RenderError", err)
	}
}

func TestLoadFontFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadFontFile(filepath.Join(dir, "Georgia.ttf"))
		var renderErr *RenderError
		if !errors.As(err, &renderErr) {
			t.Fatalf("LoadFontFile() error = %v, want *RenderError", err)
		}
		if !errors.Is(err, ErrFontUnavailable) {
			t.Errorf("LoadFontFile() error = %v, want ErrFontUnavailable", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("LoadFontFile() error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("not a font", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "notes.ttf")
		if err := os.WriteFile(path, []byte("plain text"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFontFile(path)
		if !errors.Is(err, ErrUnsupportedFont) {
			t.Errorf("LoadFontFile() error = %v, want ErrUnsupportedFont", err)
		}
	})

	t.Run("valid font", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "GoRegular.ttf")
		if err := os.WriteFile(path, DefaultFont().Data, 0o600); err != nil {
			t.Fatal(err)
		}
		font, err := LoadFontFile(path)
		if err != nil {
			t.Fatalf("LoadFontFile() error = %v", err)
		}
		if font.Family != "GoRegular" {
			t.Errorf("Family = %q, want GoRegular", font.Family)
		}
		out, err := NewRenderer(font, DefaultLayout()).Render(DefaultTitle, distinctLines(1))
		if err != nil {
			t.Fatalf("Render() with loaded font error = %v", err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Error("Render() with loaded font did not produce a PDF")
		}
	})
}

func TestRenderError_Message(t *testing.T) {
	t.Parallel()

	err := &RenderError{Op: "font", Err: ErrFontUnavailable}
	if !strings.Contains(err.Error(), "font unavailable") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrFontUnavailable) {
		t.Error("RenderError does not unwrap to its cause")
	}
}
