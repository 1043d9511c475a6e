// Package pipeline wires the network lifecycle hooks to the correlation
// cache, the payload extractor, and the broadcast hub.
package pipeline

import (
	"encoding/json"
	"log"

	"github.com/walexbarnes/nosey-web-sdk/internal/cache"
	"github.com/walexbarnes/nosey-web-sdk/internal/classify"
	"github.com/walexbarnes/nosey-web-sdk/internal/extract"
	"github.com/walexbarnes/nosey-web-sdk/internal/hub"
	"github.com/walexbarnes/nosey-web-sdk/internal/model"
	"github.com/walexbarnes/nosey-web-sdk/internal/settings"
	"github.com/walexbarnes/nosey-web-sdk/internal/stats"
)

// Pipeline dispatches the five lifecycle hooks. The classifier gate is
// re-checked at every hook rather than cached per request: hooks may race
// and a given request may be exempt from body capture. Only sendHeaders
// creates a cache entry; only beforeRequest extracts and broadcasts;
// headersReceived and completed update an existing entry, never create one.
type Pipeline struct {
	cache    *cache.Cache
	hub      *hub.Hub
	settings *settings.Store
	stats    *stats.Collector
}

// New creates a Pipeline over the given singletons.
func New(c *cache.Cache, h *hub.Hub, s *settings.Store, st *stats.Collector) *Pipeline {
	return &Pipeline{cache: c, hub: h, settings: s, stats: st}
}

// Handle processes one lifecycle event. Per-request hook order is whatever
// the network layer delivered; hooks for different requests interleave
// freely. Nothing here may fault the caller: failures degrade the single
// event only.
func (p *Pipeline) Handle(ev model.NetworkEvent) {
	if !p.settings.IsListening() {
		return
	}
	if !classify.IsTargetURL(ev.URL) {
		return
	}

	p.stats.RecordEvent()

	switch ev.Hook {
	case model.HookBeforeSendHeaders:
		p.debugf("pipeline: headers being prepared for %s", ev.RequestID)
	case model.HookSendHeaders:
		p.recordRequest(ev)
	case model.HookBeforeRequest:
		p.extractAndBroadcast(ev)
	case model.HookHeadersReceived, model.HookCompleted:
		p.attachStatus(ev)
	default:
		p.debugf("pipeline: unknown hook %q for %s", ev.Hook, ev.RequestID)
	}
}

// recordRequest creates the correlation entry. This is the only hook that
// creates one.
func (p *Pipeline) recordRequest(ev model.NetworkEvent) {
	p.cache.Set(ev.RequestID, &model.CacheEntry{
		RequestID: ev.RequestID,
		URL:       ev.URL,
		Method:    ev.Method,
		Type:      ev.Type,
	})
}

// extractAndBroadcast parses the body, extracts the configured paths, and
// fans the result out. A missing correlation entry — hook reordering, or a
// silent eviction — falls back to a minimal entry synthesized from the
// event itself.
func (p *Pipeline) extractAndBroadcast(ev model.NetworkEvent) {
	if len(ev.Body) == 0 {
		return
	}

	var body any
	if err := json.Unmarshal(ev.Body, &body); err != nil {
		p.stats.RecordParseFailure()
		p.debugf("pipeline: body parse failed for %s: %v", ev.RequestID, err)
		return
	}

	results, ok := extract.Extract(body, p.settings.TargetPaths())
	if !ok {
		return
	}

	entry, ok := p.cache.Get(ev.RequestID)
	if !ok {
		entry = &model.CacheEntry{
			RequestID: ev.RequestID,
			URL:       ev.URL,
			Method:    ev.Method,
			Type:      ev.Type,
		}
	}

	msg := &model.ResultMessage{
		Action:  model.ActionDisplayResults,
		Results: results,
		URL:     entry.URL,
		RequestInfo: model.RequestInfo{
			Method:     entry.Method,
			Type:       entry.Type,
			StatusCode: entry.StatusCode,
		},
		FullXDM: body,
	}

	p.stats.RecordMatch()
	p.hub.Broadcast(msg)
	p.stats.RecordBroadcast()
}

// attachStatus records the response status on an existing entry. Writing
// through the cache refreshes the entry's timestamp and reschedules its
// expiry; an already-evicted entry stays gone.
func (p *Pipeline) attachStatus(ev model.NetworkEvent) {
	entry, ok := p.cache.Get(ev.RequestID)
	if !ok {
		return
	}
	if ev.StatusCode == 0 {
		return
	}

	code := ev.StatusCode
	entry.StatusCode = &code
	p.cache.Set(ev.RequestID, entry)
}

func (p *Pipeline) debugf(format string, args ...any) {
	if p.settings.DebugMode() {
		log.Printf(format, args...)
	}
}
