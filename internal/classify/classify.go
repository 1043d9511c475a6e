// Package classify recognizes requests bound for the SDK's edge ingestion
// endpoint. It runs on every observed network event, so it must stay cheap.
package classify

import "strings"

// Markers that must all be present in a target URL. The endpoint path
// segment identifies the edge collection service; the two query markers
// identify an instrumented SDK call.
const (
	endpointMarker  = "/ee/"
	configIDMarker  = "configId="
	requestIDMarker = "requestId="
)

// IsTargetURL reports whether a URL belongs to the SDK ingestion endpoint.
// Pure and short-circuiting; this is the primary load-shedding filter.
func IsTargetURL(url string) bool {
	return strings.Contains(url, endpointMarker) &&
		strings.Contains(url, configIDMarker) &&
		strings.Contains(url, requestIDMarker)
}
