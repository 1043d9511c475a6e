package model

// ActionDisplayResults tags every outbound delivery message.
const ActionDisplayResults = "displayResults"

// RequestInfo carries the correlated request metadata alongside extracted
// results. StatusCode is absent when the response has not been observed yet
// (or the correlation entry was evicted first).
type RequestInfo struct {
	Method     string `json:"method"`
	Type       string `json:"type"`
	StatusCode *int   `json:"statusCode,omitempty"`
	Response   any    `json:"response,omitempty"`
}

// ResultMessage is the unit of delivery to viewers: one per matched request,
// constructed fresh and held only as long as delivery takes.
type ResultMessage struct {
	Action      string      `json:"action"`
	Results     *Results    `json:"results"`
	URL         string      `json:"url"`
	RequestInfo RequestInfo `json:"requestInfo"`
	FullXDM     any         `json:"fullXdm,omitempty"`
}

// StatusSnapshot answers a getStatus control message.
type StatusSnapshot struct {
	IsListening    bool     `json:"isListening"`
	TargetPaths    []string `json:"targetPaths"`
	DebugMode      bool     `json:"debugMode"`
	RequestCounter int64    `json:"requestCounter"`
}
