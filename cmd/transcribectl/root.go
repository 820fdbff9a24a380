package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var driverFlag string
	var sqliteFlag string

	ctx := newCommandContext(&driverFlag, &sqliteFlag)

	rootCmd := &cobra.Command{
		Use:           "transcribectl",
		Short:         "Inspect and annotate transcription documents in the content repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&driverFlag, "db-driver", "", "Metadata store driver (postgres or sqlite); overrides DB_DRIVER")
	rootCmd.PersistentFlags().StringVar(&sqliteFlag, "sqlite-path", "", "SQLite database file; overrides SQLITE_PATH")

	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newPagesCommand(ctx))
	rootCmd.AddCommand(newPageCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newRecalculateCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newOptionCommand(ctx))

	return rootCmd
}

func logLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
