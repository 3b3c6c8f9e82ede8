package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	exportSession string
	exportOutput  string
	exportUpload  bool
)

// exportCmd re-exports the report of any recorded session, current or
// historical.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the report of a recorded session",
	Long: `Export the reconciliation report of any session in the database. Use the
sessions command to find session ids. The report lists every matched scan
with its timestamp and column, followed by every reference item that was
never scanned.

Examples:
  list-scanner export --session 6cfc67e4-1b2e-4f6a-9f7d-0c1d2e3f4a5b --output ./reports
  list-scanner export --session 6cfc67e4-1b2e-4f6a-9f7d-0c1d2e3f4a5b --upload`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportSession, "session", "", "Session id to export (required)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Folder to write the report to (defaults to report.output_dir)")
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "Also upload the report to object storage")
	_ = exportCmd.MarkFlagRequired("session")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := setup()
	if err != nil {
		return err
	}

	output := exportOutput
	if output == "" {
		output = app.cfg.Report.OutputDir
	}

	if _, err := app.service.SaveReport(ctx, exportSession, output); err != nil {
		return err
	}

	if exportUpload {
		if _, err := app.service.UploadReport(ctx, exportSession); err != nil {
			return err
		}
	}
	return nil
}
