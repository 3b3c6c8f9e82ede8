package cmd

import (
	"context"
	"fmt"
	"os"

	"list-scanner/feature/scansession"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importInput   string
	importHeaders bool
	importScans   string
	importOutput  string
)

// importCmd loads a reference list and bulk-imports a position-aware scan
// export against it.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a list file and import a rack scanner export",
	Long: `Load a reference list and feed it a position-aware scan export (e.g. a
FluidX rack CSV with position, barcode, status, and rack id columns). Records
are matched strictly in file order; a malformed row or a failed write aborts
the whole import so a partial batch can never misrepresent rack contents.

Examples:
  list-scanner import --input samples.csv --scans rack_A1.csv --output ./reports`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importInput, "input", "", "Reference list file (required)")
	importCmd.Flags().BoolVar(&importHeaders, "headers", false, "Treat the first row as column labels")
	importCmd.Flags().StringVar(&importScans, "scans", "", "Positional scan export to import (required)")
	importCmd.Flags().StringVar(&importOutput, "output", "", "Folder to save the session report to")
	_ = importCmd.MarkFlagRequired("input")
	_ = importCmd.MarkFlagRequired("scans")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := setup()
	if err != nil {
		return err
	}

	table, err := scansession.ReadListFile(importInput, importHeaders)
	if err != nil {
		return err
	}

	f, err := os.Open(importScans)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: cannot load file %s", scansession.ErrNotFound, importScans)
		}
		return err
	}
	defer f.Close()

	records, err := scansession.ParsePositionalCSV(f)
	if err != nil {
		return err
	}

	session, total, err := app.service.LoadList(ctx, importInput, table)
	if err != nil {
		return err
	}

	results, err := app.service.ImportPositionalScans(ctx, session.ID, records)
	if err != nil {
		return err
	}

	matched := 0
	for _, result := range results {
		if result.Result.Matched() {
			matched++
		}
	}
	app.logger.Info("Import finished",
		zap.String("session", session.ID),
		zap.Int("records", len(results)),
		zap.Int("matched", matched),
		zap.Int64("expected", total),
	)

	return saveAndUpload(ctx, app, session.ID, importOutput)
}
