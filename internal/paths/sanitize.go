// Package paths handles the user-configured dotted field paths: sanitizing
// raw path lists and resolving paths against decoded JSON values.
package paths

import "strings"

// Defaults is the mandatory path set, always present regardless of user
// configuration. Order matters: defaults render first.
var Defaults = []string{
	"eventType",
	"web.webPageDetails.URL",
	"web.webInteraction.name",
	"web.webInteraction.region",
}

// denylist contains substrings that mark a path as reserved or internal.
// Any user path containing one of these is dropped during sanitization.
var denylist = []string{
	"_experience",
	"_adobe",
	"meta.state",
	"timestamp",
}

// Sanitize normalizes a raw path list: denylisted paths are dropped, the
// mandatory defaults are merged in first, and duplicates are removed
// preserving first-seen order. A nil or empty input yields the defaults.
//
// Sanitize is idempotent and is the single gate between raw user input and
// anything the extraction logic reads; it is applied on every load from
// storage and every save to it.
func Sanitize(paths []string) []string {
	out := make([]string, 0, len(Defaults)+len(paths))
	seen := make(map[string]bool, len(Defaults)+len(paths))

	for _, p := range Defaults {
		out = append(out, p)
		seen[p] = true
	}

	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] || denied(p) {
			continue
		}
		out = append(out, p)
		seen[p] = true
	}

	return out
}

// denied reports whether a path contains any denylisted substring.
func denied(path string) bool {
	for _, d := range denylist {
		if strings.Contains(path, d) {
			return true
		}
	}
	return false
}
