// internal/cliutil/cliutil.go
package cliutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandGlobs expands quoted glob patterns among sources, keeping order.
// Matches of one pattern are sorted; a pattern matching nothing is an error.
func ExpandGlobs(sources []string) ([]string, error) {
	var out []string
	for _, s := range sources {
		if !hasGlobMeta(s) {
			out = append(out, s)
			continue
		}
		m, err := filepath.Glob(s)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", s, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no source matched %q", s)
		}
		sort.Strings(m)
		out = append(out, m...)
	}
	return out, nil
}
