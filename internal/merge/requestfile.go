// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfmerge/pkg/types"
)

// RequestFile is the on-disk representation of a merge request. A planned
// merge can be saved as a manifest and executed later without retyping the
// file list.
type RequestFile struct {
	Inputs    []string  `yaml:"inputs"`
	Output    string    `yaml:"output"`
	Overwrite bool      `yaml:"overwrite"`
	SavedAt   time.Time `yaml:"saved_at"`
}

// WriteRequestFile saves a merge request to a YAML manifest.
func WriteRequestFile(path string, req types.MergeRequest) error {
	rf := RequestFile{
		Inputs:    req.Inputs,
		Output:    req.Output,
		Overwrite: req.Overwrite,
		SavedAt:   time.Now(),
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRequestFile loads a previously saved manifest from disk.
func ReadRequestFile(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var rf RequestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &rf, nil
}

// ToRequest converts the stored manifest back into a merge request.
func (rf *RequestFile) ToRequest() types.MergeRequest {
	return types.MergeRequest{
		Inputs:    rf.Inputs,
		Output:    rf.Output,
		Overwrite: rf.Overwrite,
	}
}
