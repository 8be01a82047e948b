package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/pixelsky/internal/render/layout"
	"github.com/rook-computer/pixelsky/internal/state"
)

type hudLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// HUD draws a diagnostics panel and an optional QR code over a finished frame.
type HUD struct {
	face   font.Face
	qrOn   bool
	qrURL  string
	qrImg  image.Image
	logger hudLogger
}

// NewHUD sizes the font for a canvas of the given height.
func NewHUD(canvasHeight int, showQR bool, logger hudLogger) *HUD {
	h := &HUD{qrOn: showQR, logger: logger}
	size := max(float64(canvasHeight)/40, minFontPt)

	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		h.face = basicfont.Face7x13
		h.errorf("truetype parse failed, using basicfont: %v", err)
		return h
	}
	h.face = truetype.NewFace(tt, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	h.infof("hud font %.0fpt", size)
	return h
}

// Lines are the text rows the panel shows for snap.
func (h *HUD) Lines(snap state.State) []string {
	st := snap.Sky
	motion := "full motion"
	if st.ReducedMotion {
		motion = "reduced motion"
	}
	lines := []string{
		fmt.Sprintf("pixelsky %dx%d %s", st.Width, st.Height, st.Device),
		fmt.Sprintf("%s, %s", snap.Phase, motion),
		fmt.Sprintf("frames %d  dropped %d  dt %.0fms", st.Rendered, st.Throttled, st.LastDT),
		fmt.Sprintf("stars %d  clouds %d  fireflies %d", st.Stars, st.Clouds, st.Particles),
		"passes " + st.LastPasses.String(),
	}
	if snap.Preview.URL != "" {
		lines = append(lines, snap.Preview.URL)
	}
	return lines
}

// Draw paints the panel in the top-left corner and the QR code in the bottom-right.
func (h *HUD) Draw(dst *image.RGBA, snap state.State) {
	area := layout.Inset(dst.Bounds(), hudMarginPx)
	lines := h.Lines(snap)

	lineHeight := h.MeasureText("Mg", TextStyle{}).LineHeight
	width := 0
	for _, line := range lines {
		width = max(width, h.MeasureText(line, TextStyle{}).Width)
	}
	panel := layout.AnchorTopLeft(area, width+2*hudPaddingPx, len(lines)*lineHeight+2*hudPaddingPx)
	draw.Draw(dst, panel, image.NewUniform(Panel), image.Point{}, draw.Over)

	rows := layout.Rows(layout.Inset(panel, hudPaddingPx), len(lines), lineHeight)
	for i, row := range rows {
		col := Foreground
		if i == 0 {
			col = Accent
		}
		h.DrawText(dst, lines[i], row.Min.X, row.Min.Y, TextStyle{Color: col})
	}

	if h.qrOn && snap.Preview.URL != "" {
		_, below := layout.SplitHorizontal(area, panel.Dy()+hudMarginPx)
		side := min(layout.FitSquare(below), area.Dy()/4)
		if qr := h.qrFor(snap.Preview.URL, side); qr != nil && side > 0 {
			rect := layout.AnchorBottomRight(area, side, side)
			xdraw.NearestNeighbor.Scale(dst, rect, qr, qr.Bounds(), xdraw.Over, nil)
		}
	}
}

func (h *HUD) qrFor(url string, side int) image.Image {
	if url == h.qrURL && h.qrImg != nil {
		return h.qrImg
	}
	img, err := GenerateQRCodeImage(url, side)
	if err != nil {
		h.errorf("qr for %q: %v", url, err)
		return nil
	}
	h.qrURL, h.qrImg = url, img
	return img
}

// MeasureText reports the extent of text in the HUD face.
func (h *HUD) MeasureText(text string, style TextStyle) TextMetrics {
	m := h.face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	return TextMetrics{
		Width:      font.MeasureString(h.face, text).Ceil(),
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: m.Height.Ceil(),
	}
}

// DrawText draws text with its top edge at y.
func (h *HUD) DrawText(dst draw.Image, text string, x, y int, style TextStyle) TextMetrics {
	metrics := h.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= metrics.Width / 2
	case TextAlignRight:
		x -= metrics.Width
	}
	col := style.Color
	if col == nil {
		col = Foreground
	}
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: h.face,
		Dot:  fixed.P(x, y+metrics.Ascent),
	}
	drawer.DrawString(text)
	return metrics
}

func (h *HUD) infof(format string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Infof("hud", format, args...)
	}
}

func (h *HUD) errorf(format string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Errorf("hud", format, args...)
	}
}
