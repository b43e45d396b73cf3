// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/pdiddy/pdfmerge/pkg/types"
)

const (
	defaultFontFamily = "Helvetica"
	defaultFontSize   = 12
	defaultMarginPt   = 54 // 0.75 inch

	// blankGapPt is the vertical gap a blank source line produces, 0.2 inch.
	blankGapPt = 14.4
)

// block is one unit of vertical text flow: a paragraph line or a gap.
type block struct {
	text string
	gap  bool
}

// layoutBlocks splits text into flow blocks: every non-blank line becomes a
// paragraph, every blank (or whitespace-only) line a vertical gap. CR before
// LF is tolerated; a trailing newline does not produce a final gap.
func layoutBlocks(text string) []block {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	blocks := make([]block, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			blocks = append(blocks, block{gap: true})
		} else {
			blocks = append(blocks, block{text: line})
		}
	}
	return blocks
}

// textStrategy lays plain text onto paginated A4 pages.
type textStrategy struct {
	family string
	size   float64
	margin float64
}

func newTextStrategy(cfg types.ConvertConfig) *textStrategy {
	s := &textStrategy{
		family: cfg.FontFamily,
		size:   cfg.FontSize,
		margin: cfg.MarginPt,
	}
	if s.family == "" {
		s.family = defaultFontFamily
	}
	if s.size <= 0 {
		s.size = defaultFontSize
	}
	if s.margin <= 0 {
		s.margin = defaultMarginPt
	}
	return s
}

func (s *textStrategy) convert(inputPath, tempDir string) (string, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", &ConversionError{Path: inputPath, Reason: "reading text file", Err: err}
	}
	// Tolerant decode: invalid UTF-8 sequences are dropped, never fatal.
	text := strings.ToValidUTF8(string(data), "")

	outPath := filepath.Join(tempDir, outName("txt", inputPath))
	if err := s.render(text, filepath.Base(inputPath), outPath); err != nil {
		return "", &ConversionError{Path: inputPath, Reason: "rendering text file", Err: err}
	}
	return outPath, nil
}

// render writes text as a paginated A4 document. Lines are drawn exactly as
// read: there is no markup layer, so & < > and quotes come out literal. An
// empty input still yields a single blank page.
func (s *textStrategy) render(text, title, outPath string) error {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(s.margin, s.margin, s.margin)
	pdf.SetAutoPageBreak(true, s.margin)
	pdf.SetFont(s.family, "", s.size)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	lineHt := s.size * 1.2
	for _, b := range layoutBlocks(text) {
		if b.gap {
			pdf.Ln(blankGapPt)
			continue
		}
		pdf.MultiCell(0, lineHt, tr(b.text), "", "L", false)
	}
	return pdf.OutputFileAndClose(outPath)
}
