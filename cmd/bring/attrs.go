package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"github.com/Daftyon/bring-go/convert"
)

var attrsCmd = &cobra.Command{
	Use:   "attrs <file.bring>",
	Short: "List every attribute in a Bring file by path",
	Long:  "Parse a Bring file and print all @name=value attributes as flattened dotted/bracketed paths.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAttrs,
}

func init() {
	rootCmd.AddCommand(attrsCmd)
}

func runAttrs(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	attrs := convert.DocumentAttributes(doc)
	paths := maps.Keys(attrs)
	sort.Strings(paths)

	for _, path := range paths {
		fmt.Printf("%s = %s\n", path, attrs[path])
	}
	return nil
}
