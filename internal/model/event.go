package model

import (
	"encoding/json"
	"time"
)

// Hook names for the five network lifecycle callbacks, in the order the
// network layer fires them for a single request.
const (
	HookBeforeSendHeaders = "beforeSendHeaders"
	HookSendHeaders       = "sendHeaders"
	HookBeforeRequest     = "beforeRequest"
	HookHeadersReceived   = "headersReceived"
	HookCompleted         = "completed"
)

// NetworkEvent is one lifecycle observation forwarded by the browser side.
// Body is only present on beforeRequest; StatusCode only on headersReceived
// and completed.
type NetworkEvent struct {
	Hook       string          `json:"hook"`
	RequestID  string          `json:"requestId"`
	URL        string          `json:"url"`
	Method     string          `json:"method"`
	Type       string          `json:"type"`
	StatusCode int             `json:"statusCode,omitempty"`
	Body       json.RawMessage `json:"body,omitempty"`
	TimeStamp  int64           `json:"timeStamp,omitempty"`
}

// CacheEntry accumulates what is known about one in-flight request as its
// lifecycle hooks arrive. Entries are looked up by RequestID only.
type CacheEntry struct {
	RequestID  string
	URL        string
	Method     string
	Type       string
	StatusCode *int      // filled in by headersReceived/completed, may never arrive
	Timestamp  time.Time // last write, drives age eviction and oldest-first capacity eviction
}
