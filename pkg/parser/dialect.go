package parser

import (
	"fmt"
	"sort"
	"sync"
)

// Dialect holds the lexical settings that vary between SQL dialects. The
// tree shape produced by the parser is dialect-independent; only comment and
// quoting syntax differ.
type Dialect struct {
	// Name is the dialect identifier (e.g., "ansi", "duckdb", "postgres")
	Name string

	// LineCommentPrefixes lists the character sequences that start a
	// comment running to end of line. "--" is always recognized.
	LineCommentPrefixes []string

	// BacktickQuotes enables `identifier` quoting in addition to "identifier".
	BacktickQuotes bool
}

var (
	dialectMu sync.RWMutex
	dialects  = make(map[string]Dialect)
)

// RegisterDialect adds a dialect to the registry. Call from init() in
// dialect packages; registering the same name twice panics.
func RegisterDialect(d Dialect) {
	dialectMu.Lock()
	defer dialectMu.Unlock()
	if _, dup := dialects[d.Name]; dup {
		panic(fmt.Sprintf("parser: dialect %q registered twice", d.Name))
	}
	dialects[d.Name] = d
}

// GetDialect looks up a dialect by name.
func GetDialect(name string) (Dialect, bool) {
	dialectMu.RLock()
	defer dialectMu.RUnlock()
	d, ok := dialects[name]
	return d, ok
}

// DialectNames returns the registered dialect names, sorted.
func DialectNames() []string {
	dialectMu.RLock()
	defer dialectMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterDialect(Dialect{Name: "ansi"})
	RegisterDialect(Dialect{Name: "duckdb"})
	RegisterDialect(Dialect{Name: "postgres"})
	RegisterDialect(Dialect{Name: "snowflake"})
	RegisterDialect(Dialect{Name: "mysql", LineCommentPrefixes: []string{"#"}, BacktickQuotes: true})
	RegisterDialect(Dialect{Name: "bigquery", LineCommentPrefixes: []string{"#"}, BacktickQuotes: true})
}
