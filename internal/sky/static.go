package sky

import (
	"image"
	"math"

	"github.com/rook-computer/pixelsky/internal/raster"
)

const (
	gradientBlock = 3
	nebulaBlock   = 4

	// nebula blocks fainter than this are not worth a fill
	nebulaAlphaFloor = 0.005
)

// BuildStaticLayer renders the gradient and nebula patches into a new image.
// It returns nil for a zero-sized surface.
func BuildStaticLayer(width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return nil
	}
	canvas := raster.NewCanvas(width, height)
	drawGradient(canvas, width, height)
	drawNebula(canvas, width, height)
	return canvas.Image()
}

func drawGradient(s Surface, w, h int) {
	segments := len(skyStops) - 1
	segmentH := float64(h) / float64(segments)

	for by := 0; by < h; by += gradientBlock {
		cy := float64(by) + gradientBlock/2.0
		seg := int(math.Floor(cy / segmentH))
		if seg > segments-1 {
			seg = segments - 1
		}
		segT := (cy - float64(seg)*segmentH) / segmentH
		a, b := skyStops[seg], skyStops[seg+1]

		for bx := 0; bx < w; bx += gradientBlock {
			c := ChooseColor(a, b, segT, bx/gradientBlock, by/gradientBlock)
			s.FillRect(bx, by, gradientBlock, gradientBlock, withAlpha(c, 1))
		}
	}
}

func drawNebula(s Surface, w, h int) {
	fw, fh := float64(w), float64(h)
	for _, p := range nebulaPatches {
		pcx, pcy := p.cx*fw, p.cy*fh
		prx, pry := p.rx*fw, p.ry*fh

		startX := max(0, int(math.Floor((pcx-prx)/nebulaBlock))*nebulaBlock)
		endX := min(w, int(math.Ceil((pcx+prx)/nebulaBlock))*nebulaBlock)
		startY := max(0, int(math.Floor((pcy-pry)/nebulaBlock))*nebulaBlock)
		endY := min(h, int(math.Ceil((pcy+pry)/nebulaBlock))*nebulaBlock)

		for bx := startX; bx < endX; bx += nebulaBlock {
			for by := startY; by < endY; by += nebulaBlock {
				dx := (float64(bx) + nebulaBlock/2.0 - pcx) / prx
				dy := (float64(by) + nebulaBlock/2.0 - pcy) / pry
				d2 := dx*dx + dy*dy
				if d2 > 1 {
					continue
				}
				falloff := (1 - d2) * (1 - d2)
				if falloff < float64(Threshold(bx/nebulaBlock, by/nebulaBlock))/16 {
					continue
				}
				alpha := p.alpha * falloff
				if alpha < nebulaAlphaFloor {
					continue
				}
				s.FillRect(bx, by, nebulaBlock, nebulaBlock, withAlpha(p.color, alpha))
			}
		}
	}
}
