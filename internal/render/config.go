package render

import (
	"image/color"
	"time"
)

// HUD palette.
var (
	Foreground = color.RGBA{R: 0xC8, G: 0xD0, B: 0xFF, A: 0xFF} // #c8d0ff
	Accent     = color.RGBA{R: 0x00, G: 0xD4, B: 0xAA, A: 0xFF} // #00d4aa
	Panel      = color.NRGBA{R: 0x0F, G: 0x1B, B: 0x3D, A: 0xC0}
)

const (
	// DevicePath is the framebuffer the kiosk draws to.
	DevicePath = "/dev/fb0"

	// PublishInterval throttles frame copies handed to the preview server.
	PublishInterval = 250 * time.Millisecond

	hudMarginPx  = 12
	hudPaddingPx = 8
	minFontPt    = 10
)
