package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Daftyon/bring-go/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.bring>",
	Short: "Convert a Bring file to JSON, YAML, or TOML",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().String("to", "json", "Output format: json, yaml, or toml")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("to")
	indent := viper.GetInt("indent")

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	var out string
	switch format {
	case "json":
		out, err = convert.JSONText(doc, indent)
	case "yaml":
		out, err = convert.YAMLText(doc)
	case "toml":
		out, err = convert.TOMLText(doc)
	default:
		return fmt.Errorf("unknown format %q (want json, yaml, or toml)", format)
	}
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}
