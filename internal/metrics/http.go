package metrics

import (
	"strconv"
	"strings"
	"time"
)

// UnmatchedRoute labels requests that hit no registered route, so probing
// clients cannot grow the label set
const UnmatchedRoute = "unmatched"

// RecordHTTPRequest records one request against its route template
func (m *Metrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		m.HTTPRequestsTotal.WithLabelValues(method, route, statusClass(statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	})
}

// RouteLabel turns a gin route template into a label relative to basePath:
// "/api/templates/:templateId/form" becomes "/templates/:templateId/form".
func RouteLabel(fullPath, basePath string) string {
	if fullPath == "" {
		return UnmatchedRoute
	}
	if basePath != "" && basePath != "/" {
		if rest, ok := strings.CutPrefix(fullPath, basePath); ok && (rest == "" || rest[0] == '/') {
			fullPath = rest
		}
	}
	if fullPath == "" {
		return "/"
	}
	return fullPath
}

// statusClass reduces a status code to its class ("2xx" .. "5xx")
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

// IsOperationalPath reports health check, scrape and API doc requests, which are not
// counted as API traffic
func IsOperationalPath(path string) bool {
	return strings.HasSuffix(path, "/metrics") ||
		strings.HasSuffix(path, "/health") ||
		strings.Contains(path, "/swagger/")
}
