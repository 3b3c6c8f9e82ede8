package cmd

import (
	"context"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// sessionsCmd lists every recorded session so an old one can be re-exported.
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded scanning sessions",
	RunE:  runSessions,
}

func init() {
	RootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}

	sessions, err := app.service.Sessions(context.Background())
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Datetime", "Filename", "Session"})
	for _, session := range sessions {
		t.AppendRow(table.Row{session.Datetime, session.Filename, session.ID})
	}
	t.Render()
	return nil
}
