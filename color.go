package weft

import (
	"os"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Profile is the color capability the encoder targets. Colors outside the
// profile are degraded to their nearest representable value before emission.
type Profile uint8

const (
	Profile16 Profile = iota
	Profile256
	ProfileRGB
)

// String returns the config-file spelling of the profile.
func (p Profile) String() string {
	switch p {
	case ProfileRGB:
		return "truecolor"
	case Profile256:
		return "256"
	default:
		return "16"
	}
}

// truecolorEnvVars identify terminals known to support 24-bit color even
// when TERM does not say so.
var truecolorEnvVars = []string{
	"KITTY_WINDOW_ID",
	"ITERM_SESSION_ID",
	"WEZTERM_EXECUTABLE",
	"ALACRITTY_LOG",
	"GHOSTTY_RESOURCES_DIR",
}

// DetectProfile inspects the environment and reports the best color profile
// the terminal is likely to support.
func DetectProfile() Profile {
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		return ProfileRGB
	}
	for _, v := range truecolorEnvVars {
		if os.Getenv(v) != "" {
			return ProfileRGB
		}
	}
	term := strings.ToLower(os.Getenv("TERM"))
	for _, marker := range []string{"truecolor", "24bit", "direct", "kitty"} {
		if strings.Contains(term, marker) {
			return ProfileRGB
		}
	}
	if strings.Contains(term, "256color") {
		return Profile256
	}
	return Profile16
}

// cubeLevels are the channel values of the xterm 6x6x6 color cube.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// palette16 holds the conventional RGB values of the 16 basic ANSI colors
// (xterm defaults), used for perceptual nearest-color matching.
var palette16 = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// palette16Lab is palette16 converted once into Lab space.
var palette16Lab [16]colorful.Color

// palette256 maps every xterm palette index to its RGB value.
var palette256 [256][3]uint8

func init() {
	for i, rgb := range palette16 {
		palette16Lab[i] = colorful.Color{
			R: float64(rgb[0]) / 255,
			G: float64(rgb[1]) / 255,
			B: float64(rgb[2]) / 255,
		}
		palette256[i] = rgb
	}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				palette256[16+36*r+6*g+b] = [3]uint8{cubeLevels[r], cubeLevels[g], cubeLevels[b]}
			}
		}
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		palette256[232+i] = [3]uint8{v, v, v}
	}
}

// degrade maps a color onto the given profile, returning the nearest value
// the profile can represent. Unset colors pass through untouched.
func degrade(c Color, p Profile) Color {
	if c.Mode == ColorNone || p == ProfileRGB {
		return c
	}
	switch c.Mode {
	case ColorRGB:
		if p == Profile256 {
			return PaletteColor(cube256(c.R, c.G, c.B))
		}
		return BasicColor(nearest16(c.R, c.G, c.B))
	case Color256:
		if p == Profile256 {
			return c
		}
		if c.Index < 16 {
			return BasicColor(c.Index)
		}
		rgb := palette256[c.Index]
		return BasicColor(nearest16(rgb[0], rgb[1], rgb[2]))
	default:
		return c
	}
}

// cube256 returns the xterm palette index nearest to an RGB value,
// considering both the 6x6x6 cube and the grayscale ramp.
func cube256(r, g, b uint8) uint8 {
	ri, gi, bi := nearestCubeLevel(r), nearestCubeLevel(g), nearestCubeLevel(b)
	cube := uint8(16 + 36*ri + 6*gi + bi)
	cubeDist := sqDist(r, g, b, cubeLevels[ri], cubeLevels[gi], cubeLevels[bi])

	// Grayscale candidate: ramp runs 8..238 in steps of 10.
	avg := (int(r) + int(g) + int(b)) / 3
	gs := (avg - 8 + 5) / 10
	if gs < 0 {
		gs = 0
	}
	if gs > 23 {
		gs = 23
	}
	gv := uint8(8 + 10*gs)
	grayDist := sqDist(r, g, b, gv, gv, gv)

	if grayDist < cubeDist {
		return uint8(232 + gs)
	}
	return cube
}

func nearestCubeLevel(v uint8) int {
	best, bestDist := 0, 1<<30
	for i, level := range cubeLevels {
		d := int(v) - int(level)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(r1, g1, b1, r2, g2, b2 uint8) int {
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return dr*dr + dg*dg + db*db
}

// nearest16 returns the basic ANSI color perceptually nearest to an RGB
// value, using Lab distance rather than raw channel distance so dark and
// saturated colors land on sensible palette entries.
func nearest16(r, g, b uint8) uint8 {
	target := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	best, bestDist := 0, float64(1<<62)
	for i, candidate := range palette16Lab {
		d := target.DistanceLab(candidate)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}
