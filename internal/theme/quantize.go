package theme

import "math"

// xterm 256-color palette geometry.
//
// Color cube: index = 16 + 36*r + 6*g + b where r,g,b ∈ [0,5]
// Grayscale ramp: indices 232-255, level = 8 + 10*(index-232)

// cubeLevels are the channel values of the 6x6x6 cube axes.
var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

const (
	cubeStart = 16
	grayStart = 232
	graySteps = 24
)

// NearestIndex maps a 24-bit color to the closest xterm 256-palette entry.
// Only the cube (16-231) and the grayscale ramp (232-255) are candidates; the
// 16 system colors are user-configurable and never returned. The cube wins
// exact distance ties.
func NearestIndex(c RGB) uint8 {
	c = c.Clamp()

	ri, gi, bi := cubeAxis(c.R), cubeAxis(c.G), cubeAxis(c.B)
	cubeIdx := cubeStart + 36*ri + 6*gi + bi
	cube := RGB{R: cubeLevels[ri], G: cubeLevels[gi], B: cubeLevels[bi]}

	step := grayStep(c)
	level := grayLevel(step)
	gray := RGB{R: level, G: level, B: level}

	if distSq(c, cube) <= distSq(c, gray) {
		return uint8(cubeIdx)
	}
	return uint8(grayStart + step)
}

// PaletteRGB returns the nominal color of a cube or grayscale index.
// Indices below 16 have no fixed color and report ok=false.
func PaletteRGB(index uint8) (RGB, bool) {
	switch {
	case index < cubeStart:
		return RGB{}, false
	case index < grayStart:
		n := int(index) - cubeStart
		return RGB{R: cubeLevels[n/36], G: cubeLevels[(n%36)/6], B: cubeLevels[n%6]}, true
	default:
		l := grayLevel(int(index) - grayStart)
		return RGB{R: l, G: l, B: l}, true
	}
}

// cubeAxis picks the first axis level with minimal absolute distance.
func cubeAxis(v int) int {
	best := 0
	bestDist := absInt(v - cubeLevels[0])
	for i := 1; i < len(cubeLevels); i++ {
		if d := absInt(v - cubeLevels[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// grayStep rounds the channel average onto the 24-step ramp.
func grayStep(c RGB) int {
	avg := (c.R + c.G + c.B) / 3
	// x.5 rounds to even.
	step := int(math.RoundToEven(float64(avg-8) / 10))
	if step < 0 {
		return 0
	}
	if step > graySteps-1 {
		return graySteps - 1
	}
	return step
}

func grayLevel(step int) int {
	return 8 + 10*step
}

func distSq(a, b RGB) int {
	dr, dg, db := a.R-b.R, a.G-b.G, a.B-b.B
	return dr*dr + dg*dg + db*db
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
