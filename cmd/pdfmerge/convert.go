package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfmerge/internal/convert"
	"github.com/pdiddy/pdfmerge/internal/merge"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a single image, text file, or Word document to PDF",
	Long: `Convert produces a standalone PDF from one input file without merging.
The output lands next to the input as <name>.pdf unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output PDF path (default: input name with .pdf)")
	convertCmd.Flags().BoolP("force", "f", false, "overwrite the output file if it exists")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output, _ := cmd.Flags().GetString("output")
	overwrite, _ := cmd.Flags().GetBool("force")

	cfg := loadConfig()
	reg := convert.NewRegistry(cfg.Convert)
	if !reg.Supports(input) {
		if strings.EqualFold(filepath.Ext(input), ".pdf") {
			return fmt.Errorf("%s is already a PDF", input)
		}
		return fmt.Errorf("unsupported file type %q: convertible types are %s",
			filepath.Ext(input), strings.Join(reg.Extensions(), ", "))
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
	}

	// A single-input merge is exactly convert-then-copy, with the same
	// output path rules as a real merge.
	merger := merge.NewMerger(reg, cfg.Merge)
	res, err := merger.Merge(types.MergeRequest{
		Inputs:    []string{input},
		Output:    output,
		Overwrite: overwrite,
	}, io.Discard)
	if err != nil {
		var merr *merge.MergeError
		if errors.As(err, &merr) {
			return merr.Err
		}
		return err
	}

	fmt.Printf("converted: %s -> %s (%d pages)\n", input, res.Output, res.Pages)
	return nil
}
