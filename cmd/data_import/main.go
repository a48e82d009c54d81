// Package main provides the data_import CLI for bulk loading and exporting portal collections.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "data_import",
		Short: "Bulk import and export of exam portal collections",
		Long: `data_import loads spreadsheets or backups into the document store in
chunks and writes collections back out as JSON backups.

Commands:
  import    Import a csv, tsv, xlsx or backup file into a collection
  export    Export a collection as a JSON backup
  clear     Delete every document of a collection`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewClearCommand())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
