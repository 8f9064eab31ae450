package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude is the glob used when no include patterns are given.
const DefaultInclude = "**/*.c"

// Input is one stub to process.
type Input struct {
	// Path is the file on disk.
	Path string
	// OutputID is the header path relative to the output directory, slash separated.
	OutputID string
}

// Discover expands paths into inputs. Files are taken as given and map to
// their base name; directories are walked and filtered by the include and
// exclude globs, and their outputs mirror the relative layout.
// The result is sorted by path and free of duplicates.
func Discover(paths, include, exclude []string) ([]Input, error) {
	if len(include) == 0 {
		include = []string{DefaultInclude}
	}
	for _, p := range append(append([]string(nil), include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob %q", p)
		}
	}

	seen := make(map[string]struct{})
	var out []Input
	add := func(in Input) {
		key := filepath.Clean(in.Path)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, in)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", p, err)
		}
		if !info.IsDir() {
			add(Input{Path: p, OutputID: OutputID(filepath.Base(p))})
			continue
		}
		found, err := walkDir(p, include, exclude)
		if err != nil {
			return nil, err
		}
		for _, in := range found {
			add(in)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func walkDir(root string, include, exclude []string) ([]Input, error) {
	var out []Input
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if matchAny(exclude, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if matchAny(include, rel) {
			out = append(out, Input{Path: p, OutputID: OutputID(rel)})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return out, nil
}

func matchAny(patterns []string, name string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}

// OutputID swaps the extension of a slash-separated relative path for ".h".
func OutputID(rel string) string {
	rel = filepath.ToSlash(rel)
	return rel[:len(rel)-len(path.Ext(rel))] + ".h"
}
