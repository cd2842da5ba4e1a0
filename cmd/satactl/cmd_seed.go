package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/pr17-lab/sata-backend/internal/seed"
)

var seedDemoCmd = &cobra.Command{
	Use:   "seed-demo",
	Short: "Seed a demo user with a graded term",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dbPool, _, lgr, err := openDatabase()
		if err != nil {
			return err
		}
		defer dbPool.Close()

		if err := seed.CreateDemoData(cmd.Context(), dbPool, lgr); err != nil {
			return err
		}

		fmt.Printf("demo account: studentId=%s password=%s\n", seed.DemoStudentID, seed.DemoPassword)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedDemoCmd)
}
