package cmd

import (
	"bufio"
	"context"

	"list-scanner/feature/scansession"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scanInput   string
	scanHeaders bool
	scanOutput  string
)

// scanCmd loads a reference list and matches tokens read from stdin, one per
// line, the way a barcode gun types them.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Load a list file and scan items interactively",
	Long: `Load a reference list (CSV, TSV, or whitespace separated text) and scan
items against it. Tokens are read from stdin, one per line; every scan is
recorded, matched or not. End input with Ctrl-D to finish the session and,
when an output folder is given, save the reconciliation report.

Examples:
  # Scan against a headerless two-column list
  list-scanner scan --input samples.csv

  # List has a header row; save the report on exit
  list-scanner scan --input samples.tsv --headers --output ./reports`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanInput, "input", "", "Reference list file (required)")
	scanCmd.Flags().BoolVar(&scanHeaders, "headers", false, "Treat the first row as column labels")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "Folder to save the session report to on exit")
	_ = scanCmd.MarkFlagRequired("input")

	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := setup()
	if err != nil {
		return err
	}

	table, err := scansession.ReadListFile(scanInput, scanHeaders)
	if err != nil {
		return err
	}

	session, total, err := app.service.LoadList(ctx, scanInput, table)
	if err != nil {
		return err
	}

	app.logger.Info("Scan items one per line, finish with Ctrl-D",
		zap.String("session", session.ID),
		zap.Int64("items", total),
	)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		outcome, err := app.service.Scan(ctx, session.ID, scanner.Text())
		if err != nil {
			return err
		}
		if outcome == nil {
			continue
		}
		app.logger.Info("Progress",
			zap.Int64("scanned", outcome.Scanned),
			zap.Int64("total", outcome.Total),
		)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return saveAndUpload(ctx, app, session.ID, scanOutput)
}

// saveAndUpload writes the session report when an output folder was given and
// uploads it when configured to.
func saveAndUpload(ctx context.Context, app *appContext, sessionID, output string) error {
	if output != "" {
		if _, err := app.service.SaveReport(ctx, sessionID, output); err != nil {
			return err
		}
	} else {
		app.logger.Info("No output folder given, report not saved",
			zap.String("session", sessionID),
		)
	}
	if app.cfg.Report.Upload {
		if _, err := app.service.UploadReport(ctx, sessionID); err != nil {
			return err
		}
	}
	return nil
}
