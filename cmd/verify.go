package cmd

import (
	"fmt"

	"list-scanner/core/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// expectedSchema maps each engine table to the columns the engine relies on.
var expectedSchema = map[string][]string{
	"session":        {"id", "filename", "datetime"},
	"reference_item": {"id", "session", "column", "item"},
	"scan_event":     {"id", "item_id", "session", "item", "scanned_datetime"},
}

// verifyCmd checks that the scan database schema matches what the engine
// expects.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the scan database schema",
	RunE:  runVerify,
}

func init() {
	RootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}

	broken := 0
	for tableName, columns := range expectedSchema {
		missing, err := database.VerifyTableColumns(app.db, tableName, columns)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			broken++
			app.logger.Error("Table is missing columns",
				zap.String("table", tableName),
				zap.Strings("missing", missing),
			)
			continue
		}
		app.logger.Info("Table verified", zap.String("table", tableName))
	}

	if broken > 0 {
		return fmt.Errorf("%d of %d tables failed verification", broken, len(expectedSchema))
	}
	app.logger.Info("Scan database schema verified")
	return nil
}
