// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/pdfmerge/pkg/types"
)

func TestLayoutBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []block
	}{
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "single line without newline",
			text: "hello",
			want: []block{{text: "hello"}},
		},
		{
			name: "trailing newline adds no gap",
			text: "hello\n",
			want: []block{{text: "hello"}},
		},
		{
			name: "blank line between paragraphs",
			text: "first\n\nsecond\n",
			want: []block{{text: "first"}, {gap: true}, {text: "second"}},
		},
		{
			name: "whitespace-only line is a gap",
			text: "first\n   \t\nsecond",
			want: []block{{text: "first"}, {gap: true}, {text: "second"}},
		},
		{
			name: "consecutive blanks each add a gap",
			text: "first\n\n\nsecond",
			want: []block{{text: "first"}, {gap: true}, {gap: true}, {text: "second"}},
		},
		{
			name: "crlf line endings",
			text: "first\r\n\r\nsecond\r\n",
			want: []block{{text: "first"}, {gap: true}, {text: "second"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layoutBlocks(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d blocks %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("block[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewTextStrategyDefaults(t *testing.T) {
	tests := []struct {
		name       string
		cfg        types.ConvertConfig
		wantFamily string
		wantSize   float64
		wantMargin float64
	}{
		{
			name:       "zero config falls back to defaults",
			cfg:        types.ConvertConfig{},
			wantFamily: "Helvetica",
			wantSize:   12,
			wantMargin: 54,
		},
		{
			name:       "explicit values are kept",
			cfg:        types.ConvertConfig{FontFamily: "Courier", FontSize: 10, MarginPt: 36},
			wantFamily: "Courier",
			wantSize:   10,
			wantMargin: 36,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTextStrategy(tt.cfg)
			if s.family != tt.wantFamily {
				t.Errorf("family = %q, want %q", s.family, tt.wantFamily)
			}
			if s.size != tt.wantSize {
				t.Errorf("size = %v, want %v", s.size, tt.wantSize)
			}
			if s.margin != tt.wantMargin {
				t.Errorf("margin = %v, want %v", s.margin, tt.wantMargin)
			}
		})
	}
}

// convertText writes content to a .txt file and runs the text strategy on it.
func convertText(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "doc.txt")
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := newTextStrategy(types.ConvertConfig{}).convert(input, tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestTextConvert(t *testing.T) {
	t.Run("markup characters render literally", func(t *testing.T) {
		// No markup layer exists, so raw HTML-ish text must not break
		// rendering or be interpreted.
		out := convertText(t, "price < 100 & quantity > 5\n<b>not bold</b>\n")
		assertPageCount(t, out, 1)
	})

	t.Run("long input paginates", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 300; i++ {
			b.WriteString("line of sample text that fills the page\n")
		}
		out := convertText(t, b.String())
		pages, err := api.PageCountFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if pages < 2 {
			t.Errorf("page count = %d, want at least 2", pages)
		}
	})

	t.Run("empty file yields one blank page", func(t *testing.T) {
		out := convertText(t, "")
		assertPageCount(t, out, 1)
	})

	t.Run("invalid utf8 is tolerated", func(t *testing.T) {
		out := convertText(t, "ok\n\xff\xfe broken bytes\n")
		assertPageCount(t, out, 1)
	})
}
