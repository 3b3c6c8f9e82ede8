package report

// Config holds configuration for session report output.
type Config struct {
	// OutputDir is the default folder reports are written to.
	OutputDir string `mapstructure:"output_dir" default:"."`
	// Prefix is the object key prefix used when uploading reports to storage.
	Prefix string `mapstructure:"prefix" default:"reports/"`
	// Upload enables uploading every saved report to object storage.
	Upload bool `mapstructure:"upload" default:"false"`
}
