package web

import (
	"html/template"
	"net/http"

	"github.com/rook-computer/pixelsky/internal/assets"
)

var previewPage = template.Must(template.ParseFS(assets.WebUI, assets.PreviewTemplate))

type previewData struct {
	Refresh   int
	Phase     string
	Frame     uint64
	Device    string
	Reduced   bool
	Stars     int
	Clouds    int
	Particles int
}

// StaticHandler serves the embedded stylesheet and friends. The page template itself is not exposed.
func StaticHandler() http.Handler {
	files := http.FileServer(http.FS(assets.WebUI))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/"+assets.PreviewTemplate {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// PreviewHandler renders a self-refreshing page around the latest frame.
func PreviewHandler(src StateSource) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		snap := src.Snapshot()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = previewPage.Execute(w, previewData{
			Refresh:   1,
			Phase:     snap.Phase.String(),
			Frame:     snap.Frame,
			Device:    snap.Sky.Device.String(),
			Reduced:   snap.Sky.ReducedMotion,
			Stars:     snap.Sky.Stars,
			Clouds:    snap.Sky.Clouds,
			Particles: snap.Sky.Particles,
		})
	})
}
