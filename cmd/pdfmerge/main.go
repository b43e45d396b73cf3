// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfmerge CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfmerge/internal/merge"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdfmerge CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfmerge",
	Short: "Merge PDFs, images, text files, and Word documents into one PDF",
	Long: `pdfmerge concatenates files into a single PDF. Inputs that are not
already PDFs are converted first: raster images (PNG, JPEG, BMP, TIFF, GIF)
become single-page PDFs with EXIF rotation applied, plain text files are
typeset onto A4 pages, and .docx files go through LibreOffice when it is
installed.

The main operation is the merge subcommand. Use plan to validate and save a
merge for later, convert for one-off file conversion, and history to inspect
past merges.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfmerge.yaml or ~/.config/pdfmerge/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfmerge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfmerge"))
		}
	}

	viper.SetEnvPrefix("PDFMERGE")
	viper.AutomaticEnv()

	viper.SetDefault("history.enabled", true)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the tool configuration from the config file and
// environment. Commands layer their flags on top of these values.
func loadConfig() types.Config {
	return types.Config{
		Convert: types.ConvertConfig{
			FontFamily: viper.GetString("convert.font_family"),
			FontSize:   viper.GetFloat64("convert.font_size"),
			MarginPt:   viper.GetFloat64("convert.margin_pt"),
			OfficePath: viper.GetString("convert.office_path"),
		},
		Merge: types.MergeConfig{
			TempDir: viper.GetString("merge.temp_dir"),
		},
		History: types.HistoryConfig{
			Enabled:    viper.GetBool("history.enabled"),
			Dir:        viper.GetString("history.dir"),
			MaxEntries: viper.GetInt("history.max_entries"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// A refused overwrite gets its own exit code so scripts can
		// tell it apart from other failures.
		var exists *merge.AlreadyExistsError
		if errors.As(err, &exists) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
