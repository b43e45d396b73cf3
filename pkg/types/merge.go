// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// MergeRequest describes one merge invocation: an ordered list of input
// files and the destination they are assembled into.
type MergeRequest struct {
	// Inputs are the files to merge, in output page order. Entries that are
	// blank or whitespace-only are discarded before validation.
	Inputs []string `json:"inputs" yaml:"inputs"`

	// Output is the destination PDF path. A path without the .pdf suffix
	// gets the suffix appended before any existence checks.
	Output string `json:"output" yaml:"output"`

	// Overwrite allows replacing an existing output file.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}

// MergeResult summarizes a completed merge.
type MergeResult struct {
	// Output is the absolute path of the merged PDF.
	Output string `json:"output" yaml:"output"`

	// Inputs is the number of input files merged.
	Inputs int `json:"inputs" yaml:"inputs"`

	// Converted is the number of inputs that required conversion to PDF.
	Converted int `json:"converted" yaml:"converted"`

	// Pages is the page count of the merged PDF.
	Pages int `json:"pages" yaml:"pages"`

	// Duration is the wall-clock time the merge took.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// MergedAt is when the merge completed.
	MergedAt time.Time `json:"merged_at" yaml:"merged_at"`
}
