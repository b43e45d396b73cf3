// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"path/filepath"

	"github.com/pdiddy/pdfmerge/internal/office"
)

// docxStrategy shells out to LibreOffice for Word documents. It is only
// registered when a usable binary was detected at registry construction.
type docxStrategy struct {
	tool office.Tool
}

func (s *docxStrategy) convert(inputPath, tempDir string) (string, error) {
	produced, err := s.tool.ConvertToPDF(inputPath, tempDir)
	if err != nil {
		return "", &ConversionError{Path: inputPath, Reason: "converting docx", Err: err}
	}

	// LibreOffice names its output after the input stem; move it onto the
	// tagged name the rest of the pipeline expects.
	outPath := filepath.Join(tempDir, outName("docx", inputPath))
	if produced != outPath {
		if err := os.Rename(produced, outPath); err != nil {
			return "", &ConversionError{Path: inputPath, Reason: "staging docx output", Err: err}
		}
	}
	return outPath, nil
}
