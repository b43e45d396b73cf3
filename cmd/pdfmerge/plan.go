package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfmerge/internal/convert"
	"github.com/pdiddy/pdfmerge/internal/merge"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan [files...]",
	Short: "Validate a merge and save it as a manifest for later",
	Long: `Plan checks a merge request (inputs exist and are convertible, output
path is usable) without writing the merged PDF, then saves the request to a
YAML manifest. Run the saved merge later with pdfmerge merge --manifest.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringP("output", "o", "", "output PDF path the merge will write (required)")
	planCmd.Flags().BoolP("force", "f", false, "plan to overwrite the output file if it exists")
	planCmd.Flags().String("manifest", "merge-plan.yaml", "where to save the manifest")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return fmt.Errorf("provide an output path with --output")
	}
	overwrite, _ := cmd.Flags().GetBool("force")
	manifest, _ := cmd.Flags().GetString("manifest")

	req := types.MergeRequest{Inputs: args, Output: output, Overwrite: overwrite}

	cfg := loadConfig()
	reg := convert.NewRegistry(cfg.Convert)
	outPath, err := merge.NewMerger(reg, cfg.Merge).Validate(req)
	if err != nil {
		return err
	}

	// Validate only checks that inputs exist; unsupported types would
	// still fail mid-merge, so catch them now.
	var unsupported []string
	for _, in := range req.Inputs {
		if strings.TrimSpace(in) == "" || strings.EqualFold(filepath.Ext(in), ".pdf") {
			continue
		}
		if !reg.Supports(in) {
			unsupported = append(unsupported, in)
		}
	}
	if len(unsupported) > 0 {
		return fmt.Errorf("cannot convert %s (convertible types are %s)",
			strings.Join(unsupported, ", "), strings.Join(reg.Extensions(), ", "))
	}

	if err := merge.WriteRequestFile(manifest, req); err != nil {
		return err
	}

	fmt.Printf("planned: %d files -> %s\n", len(req.Inputs), outPath)
	fmt.Printf("saved:   %s\n", manifest)
	return nil
}
