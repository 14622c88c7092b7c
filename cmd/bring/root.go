package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "bring",
	Short: "Bring configuration language tool",
	Long:  "Bring parses .bring configuration files into structured data and converts them to JSON, YAML, or TOML.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Int("indent", 2, "Indent width for pretty-printed output (0 for compact)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("indent", rootCmd.PersistentFlags().Lookup("indent"))
}

func initConfig() {
	viper.SetEnvPrefix("BRING")
	viper.AutomaticEnv()
}
