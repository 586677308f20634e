package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the meetup tables or indexes in the configured store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		repo, closeRepo, err := openRepo(cfg, logger)
		if err != nil {
			return err
		}
		defer closeRepo()

		if err := repo.Migrate(cmd.Context()); err != nil {
			return err
		}
		logger.Info("Migration finished", "driver", cfg.DBDriver)
		return nil
	},
}
