package httpapi

import (
	"net/http"
	"strings"
	"sync"
)

// RouteDoc describes one endpoint for GET /api/routes.
type RouteDoc struct {
	Method      string `json:"method"`
	Pattern     string `json:"pattern"`
	Summary     string `json:"summary,omitempty"`
	ExampleBody string `json:"example_body,omitempty"`
}

type RouteRegistry struct {
	mu     sync.Mutex
	routes []RouteDoc
}

func (rr *RouteRegistry) Add(doc RouteDoc) {
	rr.mu.Lock()
	rr.routes = append(rr.routes, doc)
	rr.mu.Unlock()
}

func (rr *RouteRegistry) List() []RouteDoc {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	out := make([]RouteDoc, len(rr.routes))
	copy(out, rr.routes)
	return out
}

// handle registers h on mux under "METHOD /pattern" and documents it.
func handle(mux *http.ServeMux, rr *RouteRegistry, methodAndPattern, summary, exampleBody string, h http.HandlerFunc) {
	method, pattern, _ := strings.Cut(methodAndPattern, " ")
	rr.Add(RouteDoc{Method: method, Pattern: pattern, Summary: summary, ExampleBody: exampleBody})
	mux.HandleFunc(methodAndPattern, h)
}
