package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xmltext",
		Short: "Extract readable text from XML with source provenance",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTextCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newUICmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
