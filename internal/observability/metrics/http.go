package metrics

import (
	"strconv"
	"time"
)

// Metric names emitted by the HTTP layer.
const (
	HTTPRequest         = "http.request"
	HTTPRequestDuration = "http.request_duration"
	SessionsActive      = "sessions.active"
)

// EmitRequest records one served request. route must be the route pattern, not the raw path.
func EmitRequest(sink Sink, method, route string, status int, d time.Duration) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	sink.Count(HTTPRequest, 1, tags)
	sink.Timing(HTTPRequestDuration, d, map[string]string{"method": method, "route": route})
}
