// Command puzzlesearch is the online query engine's CLI and HTTP front end:
// it decodes puzzle queries, compiles and runs them against a persisted
// dictionary, and reports ranked matches.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridword/puzzlesearch/config"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "puzzlesearch",
		Short: "Search a word-puzzle dictionary by templated pattern",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (optional)")

	root.AddCommand(newQueryCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCombineCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}
