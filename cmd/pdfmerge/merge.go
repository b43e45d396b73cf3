package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfmerge/internal/convert"
	"github.com/pdiddy/pdfmerge/internal/history"
	"github.com/pdiddy/pdfmerge/internal/merge"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [files...]",
	Short: "Merge PDFs and convertible files into a single PDF",
	Long: `Merge concatenates the given files into one PDF, in argument order.
Inputs that are not PDFs are converted first: images (PNG, JPEG, BMP, TIFF,
GIF), plain text files, and Word documents. An existing output file is left
untouched unless --force is given.

Inputs and output can also come from a manifest written by pdfmerge plan;
arguments and flags override the manifest values.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "", "output PDF path (required unless --manifest is given)")
	mergeCmd.Flags().BoolP("force", "f", false, "overwrite the output file if it exists")
	mergeCmd.Flags().String("manifest", "", "read the merge request from a manifest file")
	mergeCmd.Flags().BoolP("verbose", "v", false, "print per-file progress lines")
	mergeCmd.Flags().Bool("no-history", false, "do not record this merge in history")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	req, err := mergeRequestFromFlags(cmd, args)
	if err != nil {
		return err
	}

	// Verbose mode streams the pipeline's own per-file lines, summary
	// included; the default is one line at the end.
	progress := io.Discard
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		progress = os.Stdout
	}

	cfg := loadConfig()
	merger := merge.NewMerger(convert.NewRegistry(cfg.Convert), cfg.Merge)
	res, err := merger.Merge(req, progress)
	if err != nil {
		return err
	}
	if progress == io.Discard {
		fmt.Printf("Merged %d files -> %s\n", res.Inputs, res.Output)
	}

	recordHistory(cmd, cfg.History, res, req.Inputs)
	return nil
}

// mergeRequestFromFlags builds the merge request from the command line, a
// manifest file, or both. Arguments and flags win over manifest values.
func mergeRequestFromFlags(cmd *cobra.Command, args []string) (types.MergeRequest, error) {
	output, _ := cmd.Flags().GetString("output")
	overwrite, _ := cmd.Flags().GetBool("force")
	manifest, _ := cmd.Flags().GetString("manifest")

	if manifest == "" {
		if output == "" {
			return types.MergeRequest{}, fmt.Errorf("provide an output path with --output")
		}
		return types.MergeRequest{Inputs: args, Output: output, Overwrite: overwrite}, nil
	}

	rf, err := merge.ReadRequestFile(manifest)
	if err != nil {
		return types.MergeRequest{}, err
	}
	req := rf.ToRequest()
	if len(args) > 0 {
		req.Inputs = args
	}
	if output != "" {
		req.Output = output
	}
	if overwrite {
		req.Overwrite = true
	}
	return req, nil
}

// recordHistory stores a completed merge. History problems never fail the
// merge; they surface as warnings on stderr.
func recordHistory(cmd *cobra.Command, cfg types.HistoryConfig, res types.MergeResult, inputs []string) {
	noHistory, _ := cmd.Flags().GetBool("no-history")
	if noHistory || !cfg.Enabled {
		return
	}

	store, err := history.NewStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Record(context.Background(), res, inputs); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording history: %v\n", err)
	}
}
