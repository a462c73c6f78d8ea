package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/xmltext/document"
	"github.com/dhamidi/xmltext/format"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool
	var keepNamespaces bool
	var noTrimming bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an XML file and dump the element tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			res, err := document.Parse(data, parseOptions(keepNamespaces, noTrimming)...)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "tree":
				encoder = format.NewTreeEncoder(os.Stdout, includePositions)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(res); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree)")
	cmd.Flags().BoolVar(&includePositions, "positions", true, "include line spans in tree output")
	cmd.Flags().BoolVar(&keepNamespaces, "namespaces", false, "keep namespace qualification on names")
	cmd.Flags().BoolVar(&noTrimming, "no-trim", false, "keep raw element text untrimmed")

	return cmd
}

func parseOptions(keepNamespaces, noTrimming bool) []document.Option {
	var opts []document.Option
	if keepNamespaces {
		opts = append(opts, document.KeepNamespaces())
	}
	if noTrimming {
		opts = append(opts, document.WithoutTrimming())
	}
	return opts
}
