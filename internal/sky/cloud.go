package sky

import "math"

// BlockKind is the shading of one cloud cell.
type BlockKind uint8

const (
	BlockEmpty BlockKind = iota
	BlockBody
	BlockHighlight
	BlockShadow
)

// Cloud is a pixel-block cloud scrolling left to right.
type Cloud struct {
	X, Y      float64
	Speed     float64 // pixels per rendered frame
	Opacity   float64
	Blocks    [][]BlockKind // [row][col]
	BlockSize int
	Rows      int
	Cols      int
}

// Width is the cloud's pixel extent.
func (c *Cloud) Width() float64 {
	return float64(c.Cols * c.BlockSize)
}

// Advance moves the cloud and wraps it to exactly -Width once it is a full width past the right edge.
func (c *Cloud) Advance(surfaceWidth int) {
	c.X += c.Speed
	width := c.Width()
	if c.X >= float64(surfaceWidth)+width {
		c.X = -width
	}
}

// GenerateClouds builds a pool of 6-10 clouds for a surface.
func GenerateClouds(rng Rand, width, height int) []Cloud {
	if width <= 0 || height <= 0 {
		return nil
	}
	count := 6 + rng.IntN(5)
	clouds := make([]Cloud, 0, count)
	for i := 0; i < count; i++ {
		cols := 12 + rng.IntN(10)
		rows := 5 + rng.IntN(4)
		blockSize := 5 + rng.IntN(4)
		clouds = append(clouds, Cloud{
			X:         rng.Float64() * float64(width),
			Y:         float64(height) * (0.15 + rng.Float64()*0.40),
			Speed:     0.15 + rng.Float64()*0.20,
			Opacity:   0.35 + rng.Float64()*0.20,
			Blocks:    GenerateCloudBlocks(rng, cols, rows),
			BlockSize: blockSize,
			Rows:      rows,
			Cols:      cols,
		})
	}
	return clouds
}

// GenerateCloudBlocks carves an ellipse into a cols x rows grid with random holes,
// highlight on the top 30% and shadow on the bottom 30%.
func GenerateCloudBlocks(rng Rand, cols, rows int) [][]BlockKind {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cx, cy := float64(cols)/2, float64(rows)/2
	rx, ry := cx, cy
	highlightRow := int(math.Floor(float64(rows) * 0.3))
	shadowRow := int(math.Floor(float64(rows) * 0.7))

	grid := make([][]BlockKind, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]BlockKind, cols)
		for c := 0; c < cols; c++ {
			dx := (float64(c) - cx + 0.5) / rx
			dy := (float64(r) - cy + 0.5) / ry
			inside := dx*dx+dy*dy <= 1
			switch {
			case !inside || rng.Float64() < 0.10:
				grid[r][c] = BlockEmpty
			case r < highlightRow:
				grid[r][c] = BlockHighlight
			case r >= shadowRow:
				grid[r][c] = BlockShadow
			case rng.Float64() < 0.15:
				grid[r][c] = BlockHighlight
			default:
				grid[r][c] = BlockBody
			}
		}
	}
	return grid
}

func drawClouds(surf Surface, clouds []Cloud, w int) {
	for i := range clouds {
		cloud := &clouds[i]
		cloud.Advance(w)

		for r, row := range cloud.Blocks {
			for c, kind := range row {
				if kind == BlockEmpty {
					continue
				}
				col := cloudBody
				alpha := cloud.Opacity
				switch kind {
				case BlockHighlight:
					col, alpha = cloudHighlight, cloud.Opacity*0.75
				case BlockShadow:
					col, alpha = cloudShadow, cloud.Opacity*0.5
				}
				surf.FillRect(
					int(math.Floor(cloud.X+float64(c*cloud.BlockSize))),
					int(math.Floor(cloud.Y+float64(r*cloud.BlockSize))),
					cloud.BlockSize, cloud.BlockSize,
					withAlpha(col, alpha),
				)
			}
		}
	}
}
