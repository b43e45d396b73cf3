// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office locates a LibreOffice binary and drives headless
// document-to-PDF conversion with it.
package office

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	binSoffice     = "soffice"
	binLibreOffice = "libreoffice"
)

// Tool converts office documents to PDF through a headless LibreOffice run.
type Tool interface {
	// Name returns the binary this tool invokes ("soffice" or "libreoffice",
	// or an explicit override path).
	Name() string

	// ConvertToPDF converts inputPath to a PDF in outDir and returns the
	// produced file path. A run that exits cleanly without producing the
	// expected file is an error.
	ConvertToPDF(inputPath, outDir string) (string, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunCombined(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunCombined(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// tool implements Tool for a specific LibreOffice binary. soffice and
// libreoffice accept the same flags; they differ only in name.
type tool struct {
	bin  string
	exec executor
}

func newTool(bin string, exec executor) *tool {
	return &tool{bin: bin, exec: exec}
}

func (t *tool) Name() string { return t.bin }

// available reports whether the binary exists and responds to --version.
func (t *tool) available() bool {
	if _, err := t.exec.LookPath(t.bin); err != nil {
		return false
	}
	return t.exec.RunSilent(t.bin, "--version") == nil
}

func (t *tool) ConvertToPDF(inputPath, outDir string) (string, error) {
	out, err := t.exec.RunCombined(t.bin,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, inputPath)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return "", fmt.Errorf("running %s on %s: %w: %s",
				t.bin, filepath.Base(inputPath), err, msg)
		}
		return "", fmt.Errorf("running %s on %s: %w", t.bin, filepath.Base(inputPath), err)
	}

	// LibreOffice names the output after the input stem. It can also exit
	// zero without writing anything (e.g. filter missing), so verify.
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	produced := filepath.Join(outDir, stem+".pdf")
	if _, err := os.Stat(produced); err != nil {
		return "", fmt.Errorf("%s produced no PDF for %s", t.bin, filepath.Base(inputPath))
	}
	return produced, nil
}

var defaultExec = &osExecutor{}

// Detect tries soffice first, falls back to libreoffice. Returns an error
// if neither binary is available.
func Detect() (Tool, error) {
	return detect(defaultExec)
}

func detect(exec executor) (Tool, error) {
	soffice := newTool(binSoffice, exec)
	if soffice.available() {
		return soffice, nil
	}

	libre := newTool(binLibreOffice, exec)
	if libre.available() {
		return libre, nil
	}

	return nil, fmt.Errorf(
		"no office converter available: neither %s nor %s found or operational",
		binSoffice, binLibreOffice,
	)
}

// DetectWith uses an explicit binary name or path instead of autodetection.
func DetectWith(path string) (Tool, error) {
	return detectWith(path, defaultExec)
}

func detectWith(path string, exec executor) (Tool, error) {
	t := newTool(path, exec)
	if !t.available() {
		return nil, fmt.Errorf("office converter %s not found or not operational", path)
	}
	return t, nil
}
