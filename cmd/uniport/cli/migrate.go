package cli

import (
	"github.com/spf13/cobra"

	"github.com/pandeptwidyaop/uniport/pkg/logger"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the import schema without importing",
	Long:  `Create the universities and university_domains tables, their constraints, and the dedupe index if they do not exist. Safe to run repeatedly.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMigrate()
	},
}

func runMigrate() error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	if _, err := connect(cfg); err != nil {
		return err
	}

	logger.Info("Schema is up to date")
	return nil
}
