package types

// ConvertConfig holds settings for file-to-PDF conversion.
type ConvertConfig struct {
	// FontFamily is the font used for text pages (default "Helvetica").
	FontFamily string `json:"font_family" yaml:"font_family"`

	// FontSize is the text page font size in points (default 12).
	FontSize float64 `json:"font_size" yaml:"font_size"`

	// MarginPt is the text page margin in points (default 54, 0.75 inch).
	MarginPt float64 `json:"margin_pt" yaml:"margin_pt"`

	// OfficePath overrides the LibreOffice binary used for .docx
	// conversion. Empty means detect soffice or libreoffice on PATH.
	OfficePath string `json:"office_path,omitempty" yaml:"office_path,omitempty"`
}

// MergeConfig holds settings for the merge pipeline.
type MergeConfig struct {
	// TempDir is the parent directory for scratch conversion output
	// (default: the system temp directory). Every merge creates its own
	// subdirectory underneath and removes it when done.
	TempDir string `json:"temp_dir,omitempty" yaml:"temp_dir,omitempty"`
}

// HistoryConfig holds settings for the merge history store.
type HistoryConfig struct {
	// Enabled controls whether completed merges are recorded.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding history.db (default: the pdfmerge
	// subdirectory of the user config directory).
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// MaxEntries caps the number of retained merges (default 100).
	MaxEntries int `json:"max_entries" yaml:"max_entries"`
}

// Config groups all settings for the pdfmerge tool.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Merge   MergeConfig   `json:"merge" yaml:"merge"`
	History HistoryConfig `json:"history" yaml:"history"`
}
