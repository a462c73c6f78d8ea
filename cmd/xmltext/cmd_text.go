package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/xmltext/document"
	"github.com/dhamidi/xmltext/format"
	"github.com/spf13/cobra"
)

func newTextCmd() *cobra.Command {
	var withMap bool
	var keepNamespaces bool

	cmd := &cobra.Command{
		Use:   "text <file>",
		Short: "Print the normalized text of an XML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			res, err := document.Parse(data, parseOptions(keepNamespaces, false)...)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			if err := format.NewTextEncoder(os.Stdout, withMap).Encode(res); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&withMap, "map", "m", false, "print the provenance mapping table")
	cmd.Flags().BoolVar(&keepNamespaces, "namespaces", false, "keep namespace qualification on names")

	return cmd
}
