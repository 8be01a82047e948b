package sky

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Sky gradient, deep navy at the top to a warm amber horizon.
var skyStops = hexColors(
	"#0f1b3d",
	"#162355",
	"#1e2d6b",
	"#2a2570", // blue-purple
	"#3a2070",
	"#4a1d5e",
	"#5c1e4a", // magenta-purple
	"#7a2845",
	"#9e3040",
	"#b84035", // horizon glow
)

// BackgroundColor fills the frame when no static layer has been built yet.
var BackgroundColor = skyStops[0]

type nebulaPatch struct {
	cx, cy, rx, ry float64 // normalized to the surface
	color          color.RGBA
	alpha          float64
}

var nebulaPatches = []nebulaPatch{
	{cx: 0.25, cy: 0.15, rx: 0.18, ry: 0.12, color: mustHex("#8b5cf6"), alpha: 0.12},
	{cx: 0.70, cy: 0.20, rx: 0.15, ry: 0.10, color: mustHex("#4a9eff"), alpha: 0.10},
	{cx: 0.50, cy: 0.30, rx: 0.20, ry: 0.08, color: mustHex("#00d4aa"), alpha: 0.08},
	{cx: 0.85, cy: 0.12, rx: 0.12, ry: 0.09, color: mustHex("#8b5cf6"), alpha: 0.10},
}

var (
	starWhite = mustHex("#ffffff")
	starGold  = mustHex("#ffd700")
	starBlue  = mustHex("#4a9eff")

	fireflyTeal = mustHex("#00d4aa")
	fireflyGold = starGold

	auroraPurple = mustHex("#8b5cf6")
	auroraTeal   = mustHex("#00d4aa")

	cloudBody      = color.RGBA{R: 30, G: 30, B: 68, A: 0xFF}
	cloudHighlight = color.RGBA{R: 50, G: 50, B: 100, A: 0xFF}
	cloudShadow    = color.RGBA{R: 15, G: 15, B: 42, A: 0xFF}

	scanlineColor = color.NRGBA{A: 8} // 3% black
)

// Hex renders a palette color as #rrggbb.
func Hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

func mustHex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func hexColors(values ...string) []color.RGBA {
	out := make([]color.RGBA, len(values))
	for i, v := range values {
		out[i] = mustHex(v)
	}
	return out
}
