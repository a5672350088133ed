package journal

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Filter returns the entries whose rendered line matches pattern, a glob such
// as "*: U 2: *" or "*service of type 3". An empty pattern matches everything.
func Filter(entries []Entry, pattern string) ([]Entry, error) {
	if pattern == "" {
		return entries, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", pattern, err)
	}

	var out []Entry
	for _, e := range entries {
		if g.Match(e.String()) {
			out = append(out, e)
		}
	}
	return out, nil
}
