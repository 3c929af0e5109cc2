package translate

import "math"

// Internal angles are in degrees and lengths in millimetres. The host keeps
// lengths in millimetres and angles in radians.

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
