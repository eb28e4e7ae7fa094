package blend

import "testing"

type px struct{ r, g, b, a byte }

func TestBlendModes(t *testing.T) {
	red := px{255, 0, 0, 255}
	halfBlue := px{0, 0, 128, 128} // premultiplied
	white := px{255, 255, 255, 255}
	clear := px{}

	tests := []struct {
		name string
		mode BlendMode
		s, d px
		want px
	}{
		{"source", BlendSource, halfBlue, red, halfBlue},
		{"source over opaque", BlendSourceOver, red, white, red},
		{"source over half", BlendSourceOver, halfBlue, red, px{127, 0, 128, 255}},
		{"source over onto clear", BlendSourceOver, halfBlue, clear, halfBlue},
		{"dest over", BlendDestinationOver, red, halfBlue, px{127, 0, 128, 255}},
		{"source in clear", BlendSourceIn, red, clear, clear},
		{"source in opaque", BlendSourceIn, red, white, red},
		{"dest in", BlendDestinationIn, halfBlue, white, px{128, 128, 128, 128}},
		{"multiply", BlendMultiply, red, white, red},
		{"screen", BlendScreen, red, px{0, 0, 255, 255}, px{255, 0, 255, 255}},
		{"additive clamps", BlendAdditive, red, white, white},
		{"subtract", BlendSubtract, red, white, px{0, 255, 255, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := GetBlendFunc(tt.mode)(tt.s.r, tt.s.g, tt.s.b, tt.s.a, tt.d.r, tt.d.g, tt.d.b, tt.d.a)
			if got := (px{r, g, b, a}); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnknownModeIsSourceOver(t *testing.T) {
	r, _, _, a := GetBlendFunc(BlendMode(200))(255, 0, 0, 255, 0, 0, 0, 0)
	if r != 255 || a != 255 {
		t.Errorf("unknown mode = %d,%d", r, a)
	}
}

func TestPremultiplyRoundTrip(t *testing.T) {
	for _, c := range []px{{255, 128, 0, 255}, {200, 100, 50, 128}, {10, 20, 30, 0}} {
		r, g, b, a := Unpremultiply(Premultiply(c.r, c.g, c.b, c.a))
		if c.a == 0 {
			if (px{r, g, b, a}) != (px{}) {
				t.Errorf("transparent round trip = %v", px{r, g, b, a})
			}
			continue
		}
		if diff(r, c.r) > 2 || diff(g, c.g) > 2 || diff(b, c.b) > 2 || a != c.a {
			t.Errorf("round trip %v -> %v", c, px{r, g, b, a})
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct{ d, f, cov, want byte }{
		{0, 255, 255, 255},
		{0, 255, 0, 0},
		{255, 0, 128, 127},
		{100, 200, 128, 150},
	}
	for _, tt := range tests {
		if got := Lerp(tt.d, tt.f, tt.cov); got != tt.want {
			t.Errorf("Lerp(%d,%d,%d) = %d, want %d", tt.d, tt.f, tt.cov, got, tt.want)
		}
	}
}

func diff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
