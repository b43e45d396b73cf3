// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package office

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins   map[string]bool // binary -> whether LookPath succeeds
	runnableCmds    map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runCombinedFunc func(name string, args ...string) ([]byte, error)
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunCombined(name string, args ...string) ([]byte, error) {
	if m.runCombinedFunc != nil {
		return m.runCombinedFunc(name, args...)
	}
	return nil, nil
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "soffice available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"soffice": true},
				runnableCmds:  map[string]bool{"soffice --version": true},
			},
			wantName: "soffice",
		},
		{
			name: "libreoffice fallback when soffice missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"libreoffice": true},
				runnableCmds:  map[string]bool{"libreoffice --version": true},
			},
			wantName: "libreoffice",
		},
		{
			name: "neither available",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				runnableCmds:  map[string]bool{},
			},
			wantErr: true,
		},
		{
			name: "soffice on PATH but version probe fails, libreoffice works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"soffice": true, "libreoffice": true},
				runnableCmds:  map[string]bool{"libreoffice --version": true},
			},
			wantName: "libreoffice",
		},
		{
			name: "both available, soffice preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"soffice": true, "libreoffice": true},
				runnableCmds:  map[string]bool{"soffice --version": true, "libreoffice --version": true},
			},
			wantName: "soffice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, err := detect(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no office converter available") {
					t.Errorf("error should mention no converter available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tool.Name() != tt.wantName {
				t.Errorf("got tool %q, want %q", tool.Name(), tt.wantName)
			}
		})
	}
}

func TestDetectWith(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"/opt/libreoffice/soffice": true},
		runnableCmds:  map[string]bool{"/opt/libreoffice/soffice --version": true},
	}

	tool, err := detectWith("/opt/libreoffice/soffice", exec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tool.Name() != "/opt/libreoffice/soffice" {
		t.Errorf("got tool %q, want explicit path", tool.Name())
	}

	if _, err := detectWith("/missing/soffice", exec); err == nil {
		t.Fatal("expected error for missing binary, got nil")
	}
}

func TestConvertToPDF(t *testing.T) {
	t.Run("successful run returns produced path", func(t *testing.T) {
		outDir := t.TempDir()
		exec := &mockExecutor{
			runCombinedFunc: func(name string, args ...string) ([]byte, error) {
				// Emulate LibreOffice writing <stem>.pdf into --outdir.
				path := filepath.Join(outDir, "report.pdf")
				if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
					return nil, err
				}
				return []byte("convert /in/report.docx -> report.pdf"), nil
			},
		}
		tool := newTool("soffice", exec)

		got, err := tool.ConvertToPDF("/in/report.docx", outDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := filepath.Join(outDir, "report.pdf")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("clean exit without output file is an error", func(t *testing.T) {
		exec := &mockExecutor{
			runCombinedFunc: func(name string, args ...string) ([]byte, error) {
				return nil, nil
			},
		}
		tool := newTool("soffice", exec)

		_, err := tool.ConvertToPDF("/in/report.docx", t.TempDir())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "produced no PDF") {
			t.Errorf("error should mention missing output, got: %v", err)
		}
	})

	t.Run("run failure includes captured output", func(t *testing.T) {
		exec := &mockExecutor{
			runCombinedFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("Error: source file could not be loaded\n"), errors.New("exit status 1")
			},
		}
		tool := newTool("libreoffice", exec)

		_, err := tool.ConvertToPDF("/in/broken.docx", t.TempDir())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "could not be loaded") {
			t.Errorf("error should carry tool output, got: %v", err)
		}
	})
}
