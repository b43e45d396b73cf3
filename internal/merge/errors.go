// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import "fmt"

// ValidationError reports a merge request that is unusable as given: no
// inputs after trimming, a missing input file, or a directory output path.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AlreadyExistsError reports an output path that exists while overwriting
// was not requested. It passes through the pipeline unwrapped so callers
// can map it to their own handling, such as a dedicated exit code.
type AlreadyExistsError struct {
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("output file already exists: %s", e.Path)
}

// MergeError wraps a conversion or concatenation failure inside the merge
// pipeline.
type MergeError struct {
	Err error
}

func (e *MergeError) Error() string { return fmt.Sprintf("merging PDFs: %v", e.Err) }

func (e *MergeError) Unwrap() error { return e.Err }
