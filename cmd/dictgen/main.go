// Command dictgen runs the offline preprocessor: it reads n-gram frequency
// shards, aggregates per-word counts, and writes the two persisted
// dictionary artifacts the query engine reads.
//
//	go run ./cmd/dictgen -shard data/corpus/1gram.txt.gz -shard data/corpus/2gram.txt.gz
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"

	"github.com/gridword/puzzlesearch/config"
	"github.com/gridword/puzzlesearch/corpus"
	"github.com/gridword/puzzlesearch/dictbuild"
)

type shardFlags []string

func (s *shardFlags) String() string     { return strings.Join(*s, ",") }
func (s *shardFlags) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	var shards shardFlags
	flag.Var(&shards, "shard", "corpus shard path (.txt or .txt.gz); repeatable")
	configPath := flag.String("config", "", "path to a TOML config file (optional)")
	textOut := flag.String("text-out", "", "output path for the text list (overrides config)")
	fstOut := flag.String("fst-out", "", "output path for the FST map (overrides config)")
	cutoff := flag.Uint64("cutoff", 0, "frequency cutoff override (0 = use config default)")
	dryRun := flag.Bool("dry-run", false, "report shard/cutoff statistics without writing artifacts")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Errorf("loading config: %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if len(shards) > 0 {
		cfg.Corpus.Shards = shards
	}
	if *textOut != "" {
		cfg.Dictionary.TextListPath = *textOut
	}
	if *fstOut != "" {
		cfg.Dictionary.FSTMapPath = *fstOut
	}
	if *cutoff > 0 {
		cfg.Corpus.Cutoff = *cutoff
	}

	if len(cfg.Corpus.Shards) == 0 {
		fmt.Fprintln(os.Stderr, "dictgen: no shards given; pass -shard or set corpus.shards in a config file")
		os.Exit(1)
	}

	agg := corpus.NewAggregator()
	var totalLines, keptLines int

	for _, path := range cfg.Corpus.Shards {
		before := agg.Len()
		lines, err := corpus.ProcessShard(path, func(rec corpus.Record) {
			keptLines++
			agg.Add(rec)
		})
		if err != nil {
			log.Errorf("processing shard %s: %v", path, err)
			os.Exit(1)
		}
		after := agg.Len()
		warn := color.New(color.FgYellow)
		if lines == 0 {
			warn.Fprintf(os.Stderr, "dictgen: warning: shard %s contributed no lines\n", path)
		}
		log.Infof("shard %s: %d lines, %d new words (total distinct words: %d)", path, lines, after-before, after)
		totalLines += lines
	}

	entries := dictbuild.Select(agg.Totals(), cfg.Corpus.Cutoff)
	log.Infof("aggregated %d distinct words from %d lines; %d survive cutoff %d",
		agg.Len(), totalLines, len(entries), cfg.Corpus.Cutoff)

	if *dryRun {
		fmt.Printf("total lines:        %d\n", totalLines)
		fmt.Printf("dropped lines:      %d\n", totalLines-keptLines)
		fmt.Printf("distinct words:     %d\n", agg.Len())
		fmt.Printf("entries at cutoff:  %d (cutoff=%d)\n", len(entries), cfg.Corpus.Cutoff)
		return
	}

	stats, err := dictbuild.Write(agg.Totals(), cfg.Corpus.Cutoff, cfg.Dictionary.TextListPath, cfg.Dictionary.FSTMapPath)
	if err != nil {
		log.Errorf("writing artifacts: %v", err)
		os.Exit(1)
	}
	log.Infof("wrote %s and %s: %d/%d words kept", cfg.Dictionary.TextListPath, cfg.Dictionary.FSTMapPath, stats.KeptWords, stats.TotalWords)
}
