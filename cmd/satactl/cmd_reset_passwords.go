package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/pr17-lab/sata-backend/internal/importer"
)

var resetWorkers int

var resetPasswordsCmd = &cobra.Command{
	Use:   "reset-passwords",
	Short: "Reset every user's password to {student_id}@123",
	Long: `Rehash every account's password from its student identifier.
Destructive: requires ` + importer.AllowPasswordResetEnv + `=true in the
environment. Hashing runs on a worker pool and each update commits
independently.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dbPool, repos, lgr, err := openDatabase()
		if err != nil {
			return err
		}
		defer dbPool.Close()

		summary, err := importer.ResetPasswords(cmd.Context(), repos.UserRepository, resetWorkers, lgr)
		if err != nil {
			return err
		}

		fmt.Printf("total=%d updated=%d skipped=%d failed=%d\n",
			summary.Total, summary.Updated, summary.Skipped, summary.Failed)
		return nil
	},
}

func init() {
	resetPasswordsCmd.Flags().IntVar(&resetWorkers, "workers", importer.DefaultResetWorkers, "number of concurrent hashing workers")
	rootCmd.AddCommand(resetPasswordsCmd)
}
