// Package layout holds rectangle helpers for placing HUD elements.
package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	rect = Normalize(rect)
	if 2*paddingPx >= rect.Dx() || 2*paddingPx >= rect.Dy() {
		c := image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
		return image.Rectangle{Min: c, Max: c}
	}
	return image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	topHeightPx = clampInt(topHeightPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// Rows cuts rect into n rows of rowHeightPx from the top, dropping rows that do not fit.
func Rows(rect image.Rectangle, n, rowHeightPx int) []image.Rectangle {
	rect = Normalize(rect)
	if n <= 0 || rowHeightPx <= 0 {
		return nil
	}
	rows := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		y := rect.Min.Y + i*rowHeightPx
		if y+rowHeightPx > rect.Max.Y {
			break
		}
		rows = append(rows, image.Rect(rect.Min.X, y, rect.Max.X, y+rowHeightPx))
	}
	return rows
}

// AnchorTopLeft returns a rectangle of size (widthPx,heightPx) placed in the top-left of rect.
func AnchorTopLeft(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx = clampInt(widthPx, 0, rect.Dx())
	heightPx = clampInt(heightPx, 0, rect.Dy())
	return image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+widthPx, rect.Min.Y+heightPx)
}

// AnchorBottomRight returns a rectangle of size (widthPx,heightPx) placed in the bottom-right of rect.
func AnchorBottomRight(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx = clampInt(widthPx, 0, rect.Dx())
	heightPx = clampInt(heightPx, 0, rect.Dy())
	return image.Rect(rect.Max.X-widthPx, rect.Max.Y-heightPx, rect.Max.X, rect.Max.Y)
}

// FitSquare returns the side of the largest square that fits into rect.
func FitSquare(rect image.Rectangle) int {
	rect = Normalize(rect)
	return min(rect.Dx(), rect.Dy())
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
