package sky

import "math"

const (
	auroraStep   = 4
	auroraHeight = 6
	auroraAlpha  = 0.025
	scanlineGap  = 3
)

// drawAurora paints two standing-wave bands, purple at 20% and teal at 35% height.
func drawAurora(surf Surface, w, h int, timestamp float64) {
	t := timestamp * 0.0001
	fh := float64(h)
	purple := withAlpha(auroraPurple, auroraAlpha)
	teal := withAlpha(auroraTeal, auroraAlpha)

	for x := 0; x < w; x += auroraStep {
		wave := math.Sin(float64(x)*0.008+t) * fh * 0.03
		surf.FillRect(x, int(math.Floor(fh*0.20+wave)), auroraStep, auroraHeight, purple)
	}
	for x := 0; x < w; x += auroraStep {
		wave := math.Sin(float64(x)*0.006+t*1.3+1.5) * fh * 0.025
		surf.FillRect(x, int(math.Floor(fh*0.35+wave)), auroraStep, auroraHeight, teal)
	}
}

func drawScanlines(surf Surface, w, h int) {
	for y := 0; y < h; y += scanlineGap {
		surf.FillRect(0, y, w, 1, scanlineColor)
	}
}
