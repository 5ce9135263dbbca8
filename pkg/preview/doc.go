// Package preview serves rendered documents over HTTP for local viewing.
//
// Documents are published by name; each is rendered once per formatting
// mode and cached. Browsers connected to /ws receive a reload message when
// a page they show is republished.
//
// Routes:
//
//	GET /                     index of published pages
//	GET /pages/{name}         the page as HTML (?format=none|pretty|newline)
//	GET /pages/{name}/source  the page as text/plain
//	GET /ws                   live-reload WebSocket (when Reload is set)
//	GET /metrics              Prometheus metrics (when Metrics is set)
//	GET /healthz              health check
package preview
