package sky

import "image/color"

// 4x4 Bayer ordered-dither matrix, indexed [row][col].
var bayer4x4 = [4][4]int{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// Threshold returns the dither threshold in [0,16) for a block position.
// Negative block coordinates wrap like positive ones.
func Threshold(blockX, blockY int) int {
	return bayer4x4[mod4(blockY)][mod4(blockX)]
}

// PickSecond reports whether a block with the given blend factor takes the second color.
func PickSecond(blendT float64, threshold int) bool {
	return blendT > float64(threshold)/16
}

// ChooseColor picks a or b for the block at (blockX, blockY).
func ChooseColor(a, b color.RGBA, blendT float64, blockX, blockY int) color.RGBA {
	if PickSecond(blendT, Threshold(blockX, blockY)) {
		return b
	}
	return a
}

func mod4(v int) int {
	return ((v % 4) + 4) % 4
}
