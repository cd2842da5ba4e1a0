package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/pr17-lab/sata-backend/internal/importer"
)

var recordsYear int

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import CSV exports into the database",
}

var importStudentsCmd = &cobra.Command{
	Use:   "students <roster.csv>",
	Short: "Import a student roster",
	Long: `Create a user and profile per roster row. Rows with duplicate
emails are deduplicated keeping the first occurrence, and rows whose email
already exists in the database are skipped. New accounts get the default
password.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dbPool, repos, lgr, err := openDatabase()
		if err != nil {
			return err
		}
		defer dbPool.Close()

		im := importer.NewStudentImporter(repos.UserRepository, repos.StudentRepository, lgr)
		summary, err := im.Import(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("rows=%d created=%d skippedExisting=%d skippedInvalid=%d failed=%d\n",
			summary.TotalRows, summary.Created, summary.SkippedExisting, summary.SkippedInvalid, summary.Failed)
		return nil
	},
}

var importRecordsCmd = &cobra.Command{
	Use:   "records <records.csv>",
	Short: "Import academic records",
	Long: `Group rows by (student, semester) into academic terms, computing
each term's GPA from mean marks. Terms and subjects already present are
reused or skipped, so re-running the same file is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dbPool, repos, lgr, err := openDatabase()
		if err != nil {
			return err
		}
		defer dbPool.Close()

		im := importer.NewRecordsImporter(repos.UserRepository, repos.TermRepository, repos.SubjectRepository, recordsYear, lgr)
		summary, err := im.Import(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("rows=%d termsCreated=%d termsReused=%d subjectsCreated=%d subjectsSkipped=%d skippedRows=%d\n",
			summary.TotalRows, summary.TermsCreated, summary.TermsReused,
			summary.SubjectsCreated, summary.SubjectsSkipped, summary.SkippedRows)
		return nil
	},
}

func init() {
	importRecordsCmd.Flags().IntVar(&recordsYear, "year", importer.DefaultAcademicYear, "academic year assigned to imported terms")
	importCmd.AddCommand(importStudentsCmd)
	importCmd.AddCommand(importRecordsCmd)
	rootCmd.AddCommand(importCmd)
}
