package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/gridword/puzzlesearch/dict"
	"github.com/gridword/puzzlesearch/puzzle"
	"github.com/gridword/puzzlesearch/query"
	"github.com/gridword/puzzlesearch/search"
)

func newQueryCmd() *cobra.Command {
	var rawQuery string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a single form-encoded query and print ranked JSON results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rawQuery)
		},
	}
	cmd.Flags().StringVar(&rawQuery, "q", "", `query string, e.g. "mode=WheelOfFortune&pattern=t?e&absent_letters=h"`)
	cmd.MarkFlagRequired("q")
	return cmd
}

func runQuery(rawQuery string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	q, err := query.Decode(rawQuery)
	if err != nil {
		return printJSONError(err)
	}

	cp, err := puzzle.Compile(q)
	if err != nil {
		return printJSONError(err)
	}

	d, err := dict.Open(cfg)
	if err != nil {
		return printJSONError(err)
	}
	defer d.Close()

	results, err := search.NewEngine(d, cfg).Search(cp)
	if err != nil {
		return printJSONError(err)
	}

	return printJSONResults(results)
}

func printJSONResults(results []search.Result) error {
	if results == nil {
		results = []search.Result{}
	}
	out, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("puzzlesearch: marshal results: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// printJSONError renders err in a {"error": "..."} envelope, then returns
// nil: from the CLI's point of view a validation or I/O failure is not a
// process failure, it's a well-formed empty-ish response.
func printJSONError(err error) error {
	envelope := struct {
		Error string `json:"error"`
	}{Error: err.Error()}
	out, merr := json.Marshal(envelope)
	if merr != nil {
		return merr
	}
	fmt.Println(string(out))
	return nil
}
