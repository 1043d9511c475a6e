package paths

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeNilInput(t *testing.T) {
	got := Sanitize(nil)
	if diff := cmp.Diff(Defaults, got); diff != "" {
		t.Errorf("Sanitize(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizeEmptyInput(t *testing.T) {
	got := Sanitize([]string{})
	if diff := cmp.Diff(Defaults, got); diff != "" {
		t.Errorf("Sanitize(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizeStripsDenylisted(t *testing.T) {
	got := Sanitize([]string{"_experience.analytics.x", "foo.bar"})

	for _, p := range got {
		if p == "_experience.analytics.x" {
			t.Errorf("denylisted path survived sanitization: %v", got)
		}
	}

	want := append(append([]string{}, Defaults...), "foo.bar")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sanitize mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizeStripsAllDenylistEntries(t *testing.T) {
	in := []string{
		"_experience.foo",
		"_adobe.internal",
		"meta.state.entries",
		"data.timestamp",
		"keep.me",
	}
	got := Sanitize(in)

	want := append(append([]string{}, Defaults...), "keep.me")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sanitize mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizeDeduplicates(t *testing.T) {
	got := Sanitize([]string{"foo.bar", "eventType", "foo.bar", "baz"})

	seen := make(map[string]int)
	for _, p := range got {
		seen[p]++
	}
	for p, n := range seen {
		if n > 1 {
			t.Errorf("path %q appears %d times", p, n)
		}
	}

	// Defaults come first, then surviving user paths in original order.
	want := append(append([]string{}, Defaults...), "foo.bar", "baz")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sanitize mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := [][]string{
		nil,
		{},
		{"foo.bar"},
		{"_experience.x", "a.b", "a.b", "eventType"},
		{"  spaced  ", "web.webPageDetails.URL"},
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Sanitize not idempotent for %v (-once +twice):\n%s", in, diff)
		}
	}
}

func TestSanitizeAlwaysContainsDefaults(t *testing.T) {
	inputs := [][]string{
		nil,
		{},
		{"_experience.only.denied"},
		{"some.path", "other.path"},
	}

	for _, in := range inputs {
		got := Sanitize(in)
		have := make(map[string]bool, len(got))
		for _, p := range got {
			have[p] = true
		}
		for _, d := range Defaults {
			if !have[d] {
				t.Errorf("Sanitize(%v) missing mandatory default %q", in, d)
			}
		}
	}
}
