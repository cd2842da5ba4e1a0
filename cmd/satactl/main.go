// satactl is the operations CLI: CSV validation and import, table backup
// and restore, bulk password resets and demo seeding. It shares the API
// server's configuration and database layer.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/pr17-lab/sata-backend/internal/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "satactl",
	Short: "Operations CLI for the student academic tracking backend",
	Long: `satactl maintains the student academic tracking database:
validate and import CSV exports, back up and restore the core tables,
reset passwords in bulk and seed demo data.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
