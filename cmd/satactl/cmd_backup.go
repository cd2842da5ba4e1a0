package main

import (
	"fmt"

	"github.com/spf13/cobra"
	appRepos "github.com/pr17-lab/sata-backend/internal/app/repositories"
)

var backupTables []string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the core tables into timestamped shadow tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dbPool, repos, _, err := openDatabase()
		if err != nil {
			return err
		}
		defer dbPool.Close()

		tables := backupTables
		if len(tables) == 0 {
			tables = appRepos.CoreTables
		}

		timestamp, err := repos.BackupRepository.BackupTables(cmd.Context(), tables)
		if err != nil {
			return err
		}

		fmt.Printf("backup set %s:\n", timestamp)
		for _, table := range tables {
			fmt.Printf("  %s -> %s_backup_%s\n", table, table, timestamp)
		}
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backup sets present in the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dbPool, repos, _, err := openDatabase()
		if err != nil {
			return err
		}
		defer dbPool.Close()

		timestamps, err := repos.BackupRepository.ListBackupTimestamps(cmd.Context())
		if err != nil {
			return err
		}
		if len(timestamps) == 0 {
			fmt.Println("no backup sets found")
			return nil
		}
		for _, ts := range timestamps {
			fmt.Println(ts)
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <timestamp>",
	Short: "Restore the core tables from a backup set",
	Long: `Replace the live contents of the core tables with the rows saved
in the shadow tables of the given backup set. Aborts before touching live
data when any shadow table is missing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dbPool, repos, lgr, err := openDatabase()
		if err != nil {
			return err
		}
		defer dbPool.Close()

		if err := repos.BackupRepository.RestoreTables(cmd.Context(), appRepos.CoreTables, args[0]); err != nil {
			return err
		}

		lgr.Info().Str("timestamp", args[0]).Msg("Restore complete")
		return nil
	},
}

func init() {
	backupCmd.Flags().StringSliceVar(&backupTables, "tables", nil, "tables to back up (defaults to the core tables)")
	backupCmd.AddCommand(backupListCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
