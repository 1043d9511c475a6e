package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Results is a path→value map that remembers insertion order, so viewers
// render extracted fields in the order they were resolved.
type Results struct {
	paths  []string
	values map[string]any
}

// NewResults returns an empty result set.
func NewResults() *Results {
	return &Results{values: make(map[string]any)}
}

// Set stores a value for a path. The first Set of a path fixes its position;
// a later Set for the same path overwrites the value in place.
func (r *Results) Set(path string, value any) {
	if _, ok := r.values[path]; !ok {
		r.paths = append(r.paths, path)
	}
	r.values[path] = value
}

// Get returns the value stored for a path.
func (r *Results) Get(path string) (any, bool) {
	v, ok := r.values[path]
	return v, ok
}

// Len returns the number of stored paths.
func (r *Results) Len() int {
	return len(r.paths)
}

// Paths returns the stored paths in insertion order.
func (r *Results) Paths() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// MarshalJSON encodes the results as a JSON object whose keys appear in
// insertion order.
func (r *Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range r.paths {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[p])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the result set. Go maps do not
// preserve key order, so decoded order follows the raw token stream.
func (r *Results) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("results: expected JSON object")
	}
	r.paths = nil
	r.values = make(map[string]any)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var val any
		if err := dec.Decode(&val); err != nil {
			return err
		}
		r.Set(key, val)
	}
	_, err = dec.Token() // closing brace
	return err
}
