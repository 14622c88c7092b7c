package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas <file.bring>",
	Short: "List schema declarations in a Bring file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemas,
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}

func runSchemas(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	for _, schema := range doc.Schemas() {
		fmt.Printf("schema %s {\n", schema.Name)
		for _, rule := range schema.Rules {
			fmt.Printf("  %s = %s", rule.Key, rule.Type)
			for _, attr := range rule.Attrs {
				fmt.Printf(" @%s=%s", attr.Name, attr.Value)
			}
			fmt.Println()
		}
		fmt.Println("}")
	}
	return nil
}
