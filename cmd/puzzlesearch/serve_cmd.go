package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/gridword/puzzlesearch/dict"
	"github.com/gridword/puzzlesearch/puzzle"
	"github.com/gridword/puzzlesearch/query"
	"github.com/gridword/puzzlesearch/search"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP adapter that exposes the query engine over /search",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func runServe(addr string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d, err := dict.Open(cfg)
	if err != nil {
		return fmt.Errorf("puzzlesearch: opening dictionary: %w", err)
	}
	defer d.Close()

	engine := search.NewEngine(d, cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/search", searchHandler(engine))

	log.Infof("listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

// searchHandler is the thin HTTP adapter: it supplies a form-encoded query
// string and consumes a JSON value. Errors never produce a non-200 status;
// validation and internal failures alike come back as a 200 response with
// a JSON error envelope, matching the CLI's output shape.
func searchHandler(engine *search.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		results, err := handleSearch(engine, r.URL.RawQuery)
		if err != nil {
			writeJSONError(w, err)
			return
		}
		writeJSONResults(w, results)
	}
}

func handleSearch(engine *search.Engine, rawQuery string) (results []search.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var internalErr *search.InternalError
			if ierr, ok := rec.(error); ok && errors.As(ierr, &internalErr) {
				err = ierr
				return
			}
			err = fmt.Errorf("puzzlesearch: internal: %v", rec)
		}
	}()

	q, err := query.Decode(rawQuery)
	if err != nil {
		return nil, err
	}
	cp, err := puzzle.Compile(q)
	if err != nil {
		return nil, err
	}
	return engine.Search(cp)
}

func writeJSONResults(w http.ResponseWriter, results []search.Result) {
	if results == nil {
		results = []search.Result{}
	}
	if err := json.NewEncoder(w).Encode(results); err != nil {
		log.Errorf("encoding results: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, err error) {
	envelope := struct {
		Error string `json:"error"`
	}{Error: err.Error()}
	if encErr := json.NewEncoder(w).Encode(envelope); encErr != nil {
		log.Errorf("encoding error envelope: %v", encErr)
	}
}
