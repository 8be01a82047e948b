package assets

import (
	"embed"
	"io/fs"
)

//go:embed web
var webFS embed.FS

// WebUI is an embedded filesystem rooted at internal/assets/web.
// index.html is the preview page template; everything else is served under /static/.
var WebUI fs.FS

// PreviewTemplate names the page template inside WebUI.
const PreviewTemplate = "index.html"

func init() {
	// Embed paths include the leading directory; strip it for serving at '/'.
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	WebUI = sub
}
