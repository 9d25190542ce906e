// Package dict opens the persisted dictionary artifacts for the online
// query engine: the FST map, memory-mapped, and the text list for the
// linear-scan plan.
package dict

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gridword/puzzlesearch/config"
	"github.com/gridword/puzzlesearch/fstmap"
)

// maxDiscoveryDepth bounds how many parent directories OpenDiscover will
// walk up looking for artifacts.
const maxDiscoveryDepth = 5

// Dictionary holds both dictionary representations for the lifetime of the
// process. Callers must Close it when done to release the FST mapping.
type Dictionary struct {
	FST      *fstmap.Map
	TextPath string
}

// Open opens both artifacts from the explicit paths in cfg. This is the
// default entry point; it never walks the filesystem looking for files.
func Open(cfg config.Config) (*Dictionary, error) {
	fst, err := fstmap.Open(cfg.Dictionary.FSTMapPath)
	if err != nil {
		return nil, fmt.Errorf("dict: %w", err)
	}
	if _, err := os.Stat(cfg.Dictionary.TextListPath); err != nil {
		fst.Close()
		return nil, fmt.Errorf("dict: text list %q: %w", cfg.Dictionary.TextListPath, err)
	}
	return &Dictionary{FST: fst, TextPath: cfg.Dictionary.TextListPath}, nil
}

// Close releases the memory-mapped FST artifact.
func (d *Dictionary) Close() error {
	return d.FST.Close()
}

// OpenDiscover is a development convenience, not the default
// path-resolution strategy: it searches for "data/processed/<name>" in the
// current directory and up to maxDiscoveryDepth parents, taking the first
// hit.
func OpenDiscover(textListName, fstMapName string) (*Dictionary, error) {
	textPath, err := discover(textListName)
	if err != nil {
		return nil, err
	}
	fstPath, err := discover(fstMapName)
	if err != nil {
		return nil, err
	}
	return Open(config.Config{Dictionary: config.DictionaryConfig{
		TextListPath: textPath,
		FSTMapPath:   fstPath,
	}})
}

func discover(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("dict: getwd: %w", err)
	}
	rel := filepath.Join("data", "processed", name)

	for depth := 0; depth <= maxDiscoveryDepth; depth++ {
		candidate := filepath.Join(dir, rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("dict: could not locate %q within %d parent directories", rel, maxDiscoveryDepth)
}
