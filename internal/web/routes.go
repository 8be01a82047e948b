package web

import "net/http"

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, deps APIV1Deps) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(deps)))
}

// RegisterUI serves the preview page at "/" and its assets under /static/.
func RegisterUI(mux *http.ServeMux, deps APIV1Deps) {
	mux.Handle("/static/", http.StripPrefix("/static", StaticHandler()))
	mux.Handle("/", PreviewHandler(deps.withDefaults().State))
}

// NewDefaultMux builds the standard mux used by both the kiosk and the simulator:
// - /api/v1/* for the API
// - / for the preview page
// - /static/* for the page assets
func NewDefaultMux(deps APIV1Deps) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, deps)
	RegisterUI(mux, deps)
	return mux
}
