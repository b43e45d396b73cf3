// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge assembles a single PDF from an ordered list of input files,
// converting non-PDF inputs along the way.
package merge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/pdfmerge/internal/convert"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

// Converter produces PDFs from non-PDF input files. *convert.Registry
// satisfies it.
type Converter interface {
	// Supports reports whether path can be converted in this environment.
	Supports(path string) bool

	// Convert writes a PDF for inputPath into tempDir and returns its path.
	Convert(inputPath, tempDir string) (string, error)
}

// Merger runs the merge pipeline with a fixed converter and configuration.
type Merger struct {
	conv Converter
	cfg  types.MergeConfig
}

// NewMerger creates a merger that converts with conv and stages scratch
// files under cfg.TempDir (empty means the system temp directory).
func NewMerger(conv Converter, cfg types.MergeConfig) *Merger {
	return &Merger{conv: conv, cfg: cfg}
}

// Merge validates req, converts every non-PDF input inside a scratch
// directory, concatenates the results in input order, and renames the
// finished file onto the output path. The scratch directory is removed on
// every return path, and the output is not written until the merged file is
// complete, so the output may name one of the inputs. Per-file progress
// lines go to w; pass io.Discard (or nil) to silence them.
//
// Validation failures surface as *ValidationError or *AlreadyExistsError
// before anything is written. Later failures are wrapped in *MergeError.
func (m *Merger) Merge(req types.MergeRequest, w io.Writer) (types.MergeResult, error) {
	if w == nil {
		w = io.Discard
	}
	start := time.Now()

	inputs, outPath, err := m.validate(req)
	if err != nil {
		return types.MergeResult{}, err
	}

	tempDir, err := os.MkdirTemp(m.cfg.TempDir, "pdfmerge-*")
	if err != nil {
		return types.MergeResult{}, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPaths := make([]string, 0, len(inputs))
	converted := 0
	for _, in := range inputs {
		if isPDF(in) {
			fmt.Fprintf(w, "queued:    %s\n", filepath.Base(in))
			pdfPaths = append(pdfPaths, in)
			continue
		}

		out, err := m.conv.Convert(in, tempDir)
		if err != nil {
			return types.MergeResult{}, &MergeError{Err: err}
		}
		fmt.Fprintf(w, "converted: %s\n", filepath.Base(in))
		pdfPaths = append(pdfPaths, out)
		converted++
	}

	pages, err := writeMerged(pdfPaths, outPath)
	if err != nil {
		return types.MergeResult{}, &MergeError{Err: err}
	}

	res := types.MergeResult{
		Output:    outPath,
		Inputs:    len(inputs),
		Converted: converted,
		Pages:     pages,
		Duration:  time.Since(start),
		MergedAt:  time.Now().UTC(),
	}
	fmt.Fprintf(w, "merged:    %d files, %d pages -> %s\n", res.Inputs, res.Pages, res.Output)
	return res, nil
}

// Validate runs the request checks without merging anything and returns the
// output path a merge of req would write.
func (m *Merger) Validate(req types.MergeRequest) (string, error) {
	_, outPath, err := m.validate(req)
	return outPath, err
}

// validate applies the request checks in order: trim blank entries, require
// at least one input, require every input to be an existing regular file,
// then resolve the output path. An output naming an existing directory is
// rejected as given; otherwise the .pdf suffix is appended before the
// existence checks so the overwrite rule applies to the path actually
// written. The first violation wins; the only side effect of a passing
// validation is the output's parent directory being created.
func (m *Merger) validate(req types.MergeRequest) (inputs []string, outPath string, err error) {
	inputs = make([]string, 0, len(req.Inputs))
	for _, in := range req.Inputs {
		if strings.TrimSpace(in) == "" {
			continue
		}
		inputs = append(inputs, in)
	}
	if len(inputs) == 0 {
		return nil, "", &ValidationError{Msg: "no input files provided"}
	}

	for _, in := range inputs {
		info, statErr := os.Stat(in)
		if statErr != nil || !info.Mode().IsRegular() {
			return nil, "", &ValidationError{Msg: fmt.Sprintf("input file not found: %s", in)}
		}
	}

	outPath, err = filepath.Abs(req.Output)
	if err != nil {
		return nil, "", fmt.Errorf("resolving output path %s: %w", req.Output, err)
	}
	if info, statErr := os.Stat(outPath); statErr == nil && info.IsDir() {
		return nil, "", &ValidationError{Msg: fmt.Sprintf("output path is a directory: %s", outPath)}
	}
	if !isPDF(outPath) {
		outPath += ".pdf"
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, "", fmt.Errorf("creating output directory: %w", err)
	}

	if info, statErr := os.Stat(outPath); statErr == nil {
		if info.IsDir() {
			return nil, "", &ValidationError{Msg: fmt.Sprintf("output path is a directory: %s", outPath)}
		}
		if !req.Overwrite {
			return nil, "", &AlreadyExistsError{Path: outPath}
		}
	}

	return inputs, outPath, nil
}

// isPDF reports whether path carries the .pdf extension, case-insensitively.
func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// writeMerged concatenates the ordered PDF list into a staging file beside
// outPath, verifies the result is readable, and renames it into place. Every
// input is fully read before outPath is touched. Returns the merged page
// count.
func writeMerged(pdfPaths []string, outPath string) (int, error) {
	staged, err := os.CreateTemp(filepath.Dir(outPath), ".pdfmerge-*.pdf")
	if err != nil {
		return 0, fmt.Errorf("creating staging file: %w", err)
	}
	stagedPath := staged.Name()
	staged.Close()

	if err := concatenate(pdfPaths, stagedPath); err != nil {
		os.Remove(stagedPath)
		return 0, err
	}
	pages, err := api.PageCountFile(stagedPath)
	if err != nil {
		os.Remove(stagedPath)
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	if err := os.Rename(stagedPath, outPath); err != nil {
		os.Remove(stagedPath)
		return 0, fmt.Errorf("renaming merged file: %w", err)
	}
	return pages, nil
}

// concatenate merges the ordered PDF list into outPath. Validation is
// relaxed so scanned or slightly malformed PDFs still merge. A single
// input is copied rather than run through the merger.
func concatenate(pdfPaths []string, outPath string) error {
	if len(pdfPaths) == 1 {
		return copyFile(pdfPaths[0], outPath)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.MergeCreateFile(pdfPaths, outPath, false, conf); err != nil {
		return fmt.Errorf("concatenating %d files: %w", len(pdfPaths), err)
	}
	return nil
}

// copyFile copies src to dst, replacing dst if present.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}

// PDFs merges inputs into output using the default converter and returns
// the absolute path of the merged file.
func PDFs(inputs []string, output string, overwrite bool) (string, error) {
	m := NewMerger(convert.Default(), types.MergeConfig{})
	res, err := m.Merge(types.MergeRequest{
		Inputs:    inputs,
		Output:    output,
		Overwrite: overwrite,
	}, io.Discard)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}
