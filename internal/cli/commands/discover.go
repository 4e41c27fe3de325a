package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// expandPaths resolves the command's path arguments to a sorted list of SQL
// files. Each argument may be a file, a directory (searched recursively for
// *.sql) or a doublestar glob pattern.
func expandPaths(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			matches, err := doublestar.Glob(os.DirFS(arg), "**/*.sql")
			if err != nil {
				return nil, fmt.Errorf("searching %s: %w", arg, err)
			}
			for _, m := range matches {
				add(filepath.Join(arg, m))
			}
		case err == nil:
			add(arg)
		default:
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad path pattern %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %q", arg)
			}
			for _, m := range matches {
				if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
					add(m)
				}
			}
		}
	}

	sort.Strings(out)
	return out, nil
}
