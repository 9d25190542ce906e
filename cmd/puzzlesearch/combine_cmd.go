package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridword/puzzlesearch/dict"
	"github.com/gridword/puzzlesearch/puzzle"
	"github.com/gridword/puzzlesearch/search"
)

func newCombineCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Enumerate words matching one allowed-letter set per position",
		Long: `combine enumerates dictionary words where position i is drawn from the
i'th --set flag, e.g.:

  puzzlesearch combine --set t --set io --set e

finds three-letter words starting with t, whose second letter is i or o,
and whose third letter is e (tie, toe).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(sets)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "allowed letters for one position; repeatable, order matters")
	cmd.MarkFlagRequired("set")
	return cmd
}

func runCombine(sets []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	classes := make([]puzzle.PositionClass, len(sets))
	for i, s := range sets {
		classes[i] = puzzle.PositionClass{Letters: []byte(s)}
	}

	d, err := dict.Open(cfg)
	if err != nil {
		return printJSONError(err)
	}
	defer d.Close()

	engine := search.NewEngine(d, cfg)
	results, err := engine.Combination(classes)
	if err != nil {
		return printJSONError(err)
	}
	if len(results) == 0 {
		fmt.Println("[]")
		return nil
	}
	return printJSONResults(results)
}
