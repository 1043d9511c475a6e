package paths

import "strings"

// Resolve walks a decoded JSON value one dotted segment at a time and
// returns the value at the path. Absence — a nil root, a missing segment,
// a nil intermediate, or a non-object intermediate — is a normal outcome
// reported via the second return, never a panic.
func Resolve(root any, dotted string) (any, bool) {
	if root == nil || dotted == "" {
		return nil, false
	}

	cur := root
	for _, seg := range strings.Split(dotted, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok || cur == nil {
			return nil, false
		}
	}

	return cur, true
}
