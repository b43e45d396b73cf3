// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns heterogeneous input files (raster images, plain
// text, Word documents) into single-file PDFs ready for merging.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/pdfmerge/internal/office"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

// ConversionError reports a failure converting one input file to PDF.
type ConversionError struct {
	Path   string // input file that failed
	Reason string // short description of the failing step
	Err    error  // underlying cause, may be nil
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("converting %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("converting %s: %s", e.Path, e.Reason)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// strategyFunc converts one input file into a PDF inside tempDir and
// returns the produced path.
type strategyFunc func(inputPath, tempDir string) (string, error)

// Registry dispatches conversion by normalized (lowercase) file extension.
// The strategy table is fixed at construction; so is the docx capability,
// which depends on a LibreOffice binary being present.
type Registry struct {
	strategies map[string]strategyFunc
	officeErr  error // why .docx is unavailable, when it is
}

// NewRegistry builds the strategy table, resolving the environment-dependent
// docx capability once.
func NewRegistry(cfg types.ConvertConfig) *Registry {
	tool, err := detectOffice(cfg.OfficePath)
	return newRegistry(cfg, tool, err)
}

func newRegistry(cfg types.ConvertConfig, tool office.Tool, officeErr error) *Registry {
	r := &Registry{
		strategies: make(map[string]strategyFunc),
		officeErr:  officeErr,
	}

	img := &imageStrategy{}
	for _, ext := range imageExts {
		r.strategies[ext] = img.convert
	}
	r.strategies[extText] = newTextStrategy(cfg).convert
	if officeErr == nil && tool != nil {
		r.strategies[extDocx] = (&docxStrategy{tool: tool}).convert
	}
	return r
}

func detectOffice(override string) (office.Tool, error) {
	if override != "" {
		return office.DetectWith(override)
	}
	return office.Detect()
}

// Supports reports whether path is a type this registry can convert in the
// current environment. PDFs themselves are not "supported": they need no
// conversion.
func (r *Registry) Supports(path string) bool {
	_, ok := r.strategies[normalizeExt(path)]
	return ok
}

// Convert produces a PDF for inputPath inside tempDir and returns its path.
// Failures are *ConversionError values.
func (r *Registry) Convert(inputPath, tempDir string) (string, error) {
	ext := normalizeExt(inputPath)
	if ext == extDocx && r.officeErr != nil {
		return "", &ConversionError{
			Path:   inputPath,
			Reason: "docx conversion unavailable",
			Err:    r.officeErr,
		}
	}
	s, ok := r.strategies[ext]
	if !ok {
		return "", &ConversionError{
			Path:   inputPath,
			Reason: fmt.Sprintf("unsupported file type %q", ext),
		}
	}
	return s(inputPath, tempDir)
}

// Extensions returns the convertible extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.strategies))
	for ext := range r.strategies {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

const (
	extText = ".txt"
	extDocx = ".docx"
)

// normalizeExt returns the lowercase extension of path, dot included.
func normalizeExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// stem returns the base name of path without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outName builds the conversion output name <tag>_<stem>.pdf. The tag keeps
// same-stem files of different types from colliding in one temp dir.
func outName(tag, inputPath string) string {
	return tag + "_" + stem(inputPath) + ".pdf"
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the shared registry built with default settings. Office
// detection runs on first use, not at program start.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry(types.ConvertConfig{})
	})
	return defaultReg
}

// IsSupportedNonPDF reports whether path is a non-PDF type the default
// registry can convert.
func IsSupportedNonPDF(path string) bool {
	return Default().Supports(path)
}

// ConvertToPDF converts path with the default registry, writing into
// tempDir. An empty tempDir means the system temp directory.
func ConvertToPDF(path, tempDir string) (string, error) {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return Default().Convert(path, tempDir)
}
