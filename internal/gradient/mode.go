package gradient

import (
	"strings"
)

// BlendMode selects the color space interpolation arithmetic happens in.
type BlendMode int

const (
	BlendRGB BlendMode = iota
	BlendLinearRGB
	BlendHSV
	BlendOklab
)

var blendNames = []string{"rgb", "linear-rgb", "hsv", "oklab"}

func (m BlendMode) String() string {
	if m < 0 || int(m) >= len(blendNames) {
		return "unknown"
	}
	return blendNames[m]
}

// ParseBlendMode accepts the CLI keywords, case insensitive, '_' or '-'.
func ParseBlendMode(s string) (BlendMode, error) {
	key := normalizeKey(s)
	for i, n := range blendNames {
		if key == n {
			return BlendMode(i), nil
		}
	}
	return 0, &UnsupportedModeError{Kind: "blend mode", Value: s, Valid: blendNames}
}

// Interpolation selects the spline family.
type Interpolation int

const (
	InterpLinear Interpolation = iota
	InterpBasis
	InterpCatmullRom
)

var interpNames = []string{"linear", "basis", "catmull-rom"}

func (i Interpolation) String() string {
	if i < 0 || int(i) >= len(interpNames) {
		return "unknown"
	}
	return interpNames[i]
}

func ParseInterpolation(s string) (Interpolation, error) {
	key := normalizeKey(s)
	for i, n := range interpNames {
		if key == n {
			return Interpolation(i), nil
		}
	}
	return 0, &UnsupportedModeError{Kind: "interpolation", Value: s, Valid: interpNames}
}

func normalizeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
}

// defaults for custom gradients
const (
	DefaultBlendMode     = BlendOklab
	DefaultInterpolation = InterpCatmullRom
)
