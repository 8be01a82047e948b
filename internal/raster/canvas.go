// Package raster provides the CPU-side drawing surface the sky renderer paints on.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Canvas is an RGBA raster with block fills and scaled blits.
// The zero value is an empty 0x0 canvas.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a canvas of the given size. Non-positive sizes yield an empty canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the backing image. Existing content is discarded.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Size reports the pixel dimensions.
func (c *Canvas) Size() (int, int) {
	if c.img == nil {
		return 0, 0
	}
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the backing image. Callers must not retain it across Resize.
func (c *Canvas) Image() *image.RGBA {
	if c.img == nil {
		c.img = image.NewRGBA(image.Rectangle{})
	}
	return c.img
}

// FillRect composites col over the rectangle (x, y, w, h), clipped to the canvas.
// Opaque colors replace the destination; translucent colors blend.
func (c *Canvas) FillRect(x, y, w, h int, col color.NRGBA) {
	if c.img == nil || w <= 0 || h <= 0 || col.A == 0 {
		return
	}
	rect := image.Rect(x, y, x+w, y+h).Intersect(c.img.Bounds())
	if rect.Empty() {
		return
	}
	op := draw.Over
	if col.A == 0xFF {
		op = draw.Src
	}
	draw.Draw(c.img, rect, &image.Uniform{C: col}, image.Point{}, op)
}

// Fill replaces every pixel with col.
func (c *Canvas) Fill(col color.Color) {
	if c.img == nil {
		return
	}
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

// DrawImage copies src into dst with nearest-neighbor scaling, keeping the blocky look.
func (c *Canvas) DrawImage(src image.Image, dst image.Rectangle) {
	if c.img == nil || src == nil || src.Bounds().Empty() {
		return
	}
	dst = dst.Intersect(c.img.Bounds())
	if dst.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, src, src.Bounds(), xdraw.Src, nil)
}

// Snapshot returns a deep copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	src := c.Image()
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}
