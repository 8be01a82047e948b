package render

import (
	"image"
	"strings"
	"testing"

	"github.com/rook-computer/pixelsky/internal/sky"
	"github.com/rook-computer/pixelsky/internal/state"
)

func TestHUD_Lines(t *testing.T) {
	h := NewHUD(400, false, nil)
	snap := state.State{
		Phase: state.RUNNING,
		Sky: sky.Stats{
			Width: 640, Height: 400, Device: sky.Mobile, ReducedMotion: true,
			Rendered: 10, Stars: 138, LastPasses: sky.PassSky | sky.PassStars,
		},
		Preview: state.PreviewInfo{URL: "http://10.0.0.2:8080/"},
	}
	lines := strings.Join(h.Lines(snap), "\n")
	for _, want := range []string{"640x400 mobile", "reduced motion", "stars 138", "passes sky|stars", "http://10.0.0.2:8080/"} {
		if !strings.Contains(lines, want) {
			t.Errorf("HUD lines missing %q:\n%s", want, lines)
		}
	}
}

func TestHUD_MeasureAndAlign(t *testing.T) {
	h := NewHUD(400, false, nil)
	short := h.MeasureText("ab", TextStyle{})
	long := h.MeasureText("abcdef", TextStyle{})
	if long.Width <= short.Width || short.LineHeight <= 0 || short.Ascent <= 0 {
		t.Errorf("metrics short=%+v long=%+v", short, long)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 200, 40))
	h.DrawText(dst, "WWW", 200, 0, TextStyle{Align: TextAlignRight})
	painted := false
	for x := 100; x < 200; x++ {
		for y := 0; y < 40; y++ {
			if dst.RGBAAt(x, y).A != 0 {
				painted = true
			}
		}
	}
	if !painted {
		t.Error("right-aligned text did not land at the right edge")
	}
}

func TestHUD_QRCode(t *testing.T) {
	h := NewHUD(400, true, nil)
	snap := state.State{Preview: state.PreviewInfo{URL: "http://kiosk:8080/"}}
	dst := image.NewRGBA(image.Rect(0, 0, 600, 400))
	h.Draw(dst, snap)

	// Bottom-right corner of the margin area holds the QR code.
	if dst.RGBAAt(600-hudMarginPx-1, 400-hudMarginPx-1).A == 0 {
		t.Error("no QR code in the bottom-right corner")
	}
	first := h.qrImg
	h.Draw(dst, snap)
	if h.qrImg != first {
		t.Error("QR code regenerated for an unchanged URL")
	}
}

func TestGenerateQRCodeImage(t *testing.T) {
	img, err := GenerateQRCodeImage("", 0)
	if img != nil || err != nil {
		t.Errorf("empty payload = %v, %v", img, err)
	}
	img, err = GenerateQRCodeImage("http://kiosk:8080/", 0)
	if err != nil || img == nil {
		t.Fatalf("GenerateQRCodeImage error: %v", err)
	}
	if img.Bounds().Dx() != defaultQRCodeSizePx {
		t.Errorf("size = %d, want default %d", img.Bounds().Dx(), defaultQRCodeSizePx)
	}
}
