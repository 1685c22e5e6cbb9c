package weft

import "testing"

// clearProfileEnv scrubs every variable DetectProfile consults so the test
// host's terminal does not leak into assertions.
func clearProfileEnv(t *testing.T) {
	t.Helper()
	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "")
	for _, v := range truecolorEnvVars {
		t.Setenv(v, "")
	}
}

func TestDetectProfile(t *testing.T) {
	t.Run("colorterm truecolor", func(t *testing.T) {
		clearProfileEnv(t)
		t.Setenv("COLORTERM", "truecolor")
		if got := DetectProfile(); got != ProfileRGB {
			t.Errorf("got %v", got)
		}
	})

	t.Run("colorterm 24bit", func(t *testing.T) {
		clearProfileEnv(t)
		t.Setenv("COLORTERM", "24bit")
		if got := DetectProfile(); got != ProfileRGB {
			t.Errorf("got %v", got)
		}
	})

	t.Run("terminal marker variables", func(t *testing.T) {
		clearProfileEnv(t)
		t.Setenv("KITTY_WINDOW_ID", "1")
		if got := DetectProfile(); got != ProfileRGB {
			t.Errorf("got %v", got)
		}
	})

	t.Run("term 256color", func(t *testing.T) {
		clearProfileEnv(t)
		t.Setenv("TERM", "xterm-256color")
		if got := DetectProfile(); got != Profile256 {
			t.Errorf("got %v", got)
		}
	})

	t.Run("term direct", func(t *testing.T) {
		clearProfileEnv(t)
		t.Setenv("TERM", "xterm-direct")
		if got := DetectProfile(); got != ProfileRGB {
			t.Errorf("got %v", got)
		}
	})

	t.Run("bare term falls back to 16", func(t *testing.T) {
		clearProfileEnv(t)
		t.Setenv("TERM", "vt100")
		if got := DetectProfile(); got != Profile16 {
			t.Errorf("got %v", got)
		}
	})
}

func TestProfileString(t *testing.T) {
	tests := []struct {
		p    Profile
		want string
	}{
		{ProfileRGB, "truecolor"},
		{Profile256, "256"},
		{Profile16, "16"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestCube256(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"black corner", 0, 0, 0, 16},
		{"white corner", 255, 255, 255, 231},
		{"pure red", 255, 0, 0, 196},
		{"pure green", 0, 255, 0, 46},
		{"pure blue", 0, 0, 255, 21},
		{"mid gray uses the ramp", 128, 128, 128, 244},
		{"near black gray", 8, 8, 8, 232},
		{"near white gray", 238, 238, 238, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cube256(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("cube256(%d,%d,%d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestNearest16(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 15},
		{"bright red", 255, 0, 0, 9},
		{"bright green", 0, 255, 0, 10},
		{"plain red", 205, 0, 0, 1},
		{"plain cyan", 0, 205, 205, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearest16(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("nearest16(%d,%d,%d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestDegrade(t *testing.T) {
	t.Run("unset colors pass through", func(t *testing.T) {
		if got := degrade(Color{}, Profile16); got != (Color{}) {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("basics survive every profile", func(t *testing.T) {
		for _, p := range []Profile{Profile16, Profile256, ProfileRGB} {
			if got := degrade(Red, p); got != Red {
				t.Errorf("profile %v: got %+v", p, got)
			}
		}
	})

	t.Run("rgb untouched on truecolor", func(t *testing.T) {
		c := RGB(12, 34, 56)
		if got := degrade(c, ProfileRGB); got != c {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("rgb to 256 picks a palette index", func(t *testing.T) {
		got := degrade(RGB(255, 0, 0), Profile256)
		if got != PaletteColor(196) {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("rgb to 16 picks a basic", func(t *testing.T) {
		got := degrade(RGB(255, 0, 0), Profile16)
		if got != BasicColor(9) {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("palette to 16 maps through its rgb value", func(t *testing.T) {
		got := degrade(PaletteColor(46), Profile16)
		if got != BasicColor(10) {
			t.Errorf("got %+v", got)
		}
	})
}

func TestHex(t *testing.T) {
	c := Hex(0x4080FF)
	if c.R != 0x40 || c.G != 0x80 || c.B != 0xFF {
		t.Errorf("got %+v", c)
	}
	if c.Mode != ColorRGB {
		t.Errorf("mode = %v", c.Mode)
	}
}
