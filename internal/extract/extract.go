// Package extract pulls configured field values out of a parsed SDK request
// body. Two payload shapes are recognized: the batched-event envelope and
// the flat metadata envelope; anything else yields no extraction.
package extract

import (
	"github.com/walexbarnes/nosey-web-sdk/internal/model"
	"github.com/walexbarnes/nosey-web-sdk/internal/paths"
)

// eventTypePath is emitted synthetically for event envelopes even when the
// configured path list does not request it.
const eventTypePath = "eventType"

// Extract resolves the given sanitized paths against a decoded request body.
// It returns false when the body matches neither envelope shape or when not
// a single path resolved — zero-match payloads are dropped, not forwarded
// as empty results.
func Extract(body any, targetPaths []string) (*model.Results, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, false
	}

	if events, ok := obj["events"].([]any); ok && len(events) > 0 {
		return fromEvent(events[0], targetPaths)
	}

	if _, ok := obj["meta"]; ok {
		return fromObject(obj, targetPaths)
	}
	if _, ok := obj["requestId"]; ok {
		return fromObject(obj, targetPaths)
	}

	return nil, false
}

// fromEvent extracts from the first event of a batched-event envelope.
// The target object is the event's nested experience-data object when
// present, otherwise the event itself.
func fromEvent(event any, targetPaths []string) (*model.Results, bool) {
	target := event
	if obj, ok := event.(map[string]any); ok {
		if xdm, ok := obj["xdm"]; ok && xdm != nil {
			target = xdm
		}
	}

	results := model.NewResults()

	// Synthetic eventType, unless the configured paths already ask for it.
	if !requested(targetPaths, eventTypePath) {
		if v, ok := paths.Resolve(target, eventTypePath); ok {
			results.Set(eventTypePath, v)
		}
	}

	resolveAll(results, target, targetPaths)

	if results.Len() == 0 {
		return nil, false
	}
	return results, true
}

// fromObject extracts from a flat metadata envelope: every path resolves
// directly against the top-level body.
func fromObject(obj map[string]any, targetPaths []string) (*model.Results, bool) {
	results := model.NewResults()
	resolveAll(results, obj, targetPaths)

	if results.Len() == 0 {
		return nil, false
	}
	return results, true
}

func resolveAll(results *model.Results, root any, targetPaths []string) {
	for _, p := range targetPaths {
		if v, ok := paths.Resolve(root, p); ok {
			results.Set(p, v)
		}
	}
}

func requested(targetPaths []string, path string) bool {
	for _, p := range targetPaths {
		if p == path {
			return true
		}
	}
	return false
}
