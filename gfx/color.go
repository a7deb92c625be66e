package gfx

// color.go mirrors the float/packed colour pair used by the shared vertex
// layout and material parameters (spec 4.A). Kept independent of the root
// kamilo package's Color so gfx has no dependency on the node tree;
// application code converts a Node's tree colour to gfx.Color when
// building draw commands in its Render hook.

// Color is an unpremultiplied float RGBA colour, nominally in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the identity tint.
var ColorWhite = Color{1, 1, 1, 1}

// Mul returns the component-wise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// NearEqual reports whether c and o match within eps on every channel,
// used by material compatibility testing (spec 4.G).
func (c Color) NearEqual(o Color, eps float64) bool {
	return absf(c.R-o.R) <= eps && absf(c.G-o.G) <= eps &&
		absf(c.B-o.B) <= eps && absf(c.A-o.A) <= eps
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Color32 is an 8-bit-per-channel packed RGBA colour, matching the vertex
// layout's diffuse/specular fields.
type Color32 uint32

// ToColor32 packs c into a Color32, clamping each channel to [0, 255].
func (c Color) ToColor32() Color32 {
	clamp8 := func(v float64) uint32 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint32(v*255 + 0.5)
	}
	r, g, b, a := clamp8(c.R), clamp8(c.G), clamp8(c.B), clamp8(c.A)
	return Color32(r | g<<8 | b<<16 | a<<24)
}

// ToColor unpacks a Color32 into float components.
func (c Color32) ToColor() Color {
	const s = 1.0 / 255.0
	return Color{
		R: float64(c&0xff) * s,
		G: float64((c>>8)&0xff) * s,
		B: float64((c>>16)&0xff) * s,
		A: float64((c>>24)&0xff) * s,
	}
}
