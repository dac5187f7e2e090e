package background

import "github.com/matjam/setroot/internal/types"

// ValidEasing reports whether mode is a known easing mode.
func ValidEasing(mode types.EasingMode) bool {
	switch mode {
	case types.EasingLinear, types.EasingEaseIn, types.EasingEaseOut, types.EasingEaseInOut:
		return true
	}
	return false
}

// applyEasing maps linear progress t in [0,1] onto the easing curve. Every
// curve is strictly increasing on [0,1] and maps 1 to 1.
func applyEasing(mode types.EasingMode, t float64) float64 {
	switch mode {
	case types.EasingLinear:
		return t
	case types.EasingEaseIn:
		return t * t
	case types.EasingEaseOut:
		return t * (2 - t)
	case types.EasingEaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	default:
		return t
	}
}
