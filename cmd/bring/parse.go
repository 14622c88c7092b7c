package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Daftyon/bring-go/convert"
	"github.com/Daftyon/bring-go/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.bring>",
	Short: "Parse a Bring file and print its JSON projection",
	Long:  "Parse a Bring configuration file and print the plain-data projection as JSON. Schema declarations are parsed but excluded from the output.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("check", false, "Parse and report only, do not print output")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	check, _ := cmd.Flags().GetBool("check")
	verbose := viper.GetBool("verbose")
	indent := viper.GetInt("indent")

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Parsed %s: %d entries (%d schemas)\n",
			args[0], len(doc.Entries), len(doc.Schemas()))
	}

	if check {
		fmt.Fprintf(os.Stderr, "%s parsed successfully\n", args[0])
		printDocumentSummary(doc)
		return nil
	}

	out, err := convert.JSONText(doc, indent)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// loadDocument reads and parses a Bring file.
func loadDocument(path string) (*parser.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

func printDocumentSummary(doc *parser.Document) {
	for _, e := range doc.Entries {
		switch {
		case e.Schema != nil:
			fmt.Fprintf(os.Stderr, "  schema %s (%d rules)\n", e.Schema.Name, len(e.Schema.Rules))
		default:
			fmt.Fprintf(os.Stderr, "  %s = %s\n", e.Key, e.Value)
		}
	}
}
