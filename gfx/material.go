package gfx

// material.go implements Material (spec 3, 4.G): a bundle of (texture,
// shader, blend mode, filter mode, wrap flag, diffuse colour, specular
// colour, optional callback hook) plus the compatibility test the
// draw-list fuser uses to decide whether two batches can share a single
// device state change. The teacher has no material abstraction (willow
// draws sprites/meshes directly against a page image and a BlendMode
// enum); this is new code in the teacher's struct-first style, built
// directly from spec 4.G's definition.

// materialEpsilon bounds the "within epsilon" diffuse/specular comparisons
// spec 4.G's compatibility test calls for.
const materialEpsilon = 1.0 / 255.0

// Callback lets application code intervene once per item a material is
// used on, e.g. to set a per-instance shader uniform. A material with a
// non-nil Callback is never considered compatible with another (spec
// 4.G: "neither has a callback").
type Callback func(item any)

// Material bundles the device state a single draw-list item needs.
type Material struct {
	Texture  *Texture
	Shader   *Shader
	Blend    BlendMode
	Filter   FilterMode
	Wrap     WrapMode
	Diffuse  Color
	Specular Color
	Callback Callback
}

// Compatible reports whether a and b can be drawn with a single device
// state change: same shader, texture, blend, filter and wrap mode; diffuse
// and specular equal within materialEpsilon; and neither carries a
// callback.
func (a *Material) Compatible(b *Material) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Callback != nil || b.Callback != nil {
		return false
	}
	if a.Shader != b.Shader || a.Texture != b.Texture {
		return false
	}
	if a.Blend != b.Blend || a.Filter != b.Filter || a.Wrap != b.Wrap {
		return false
	}
	return a.Diffuse.NearEqual(b.Diffuse, materialEpsilon) && a.Specular.NearEqual(b.Specular, materialEpsilon)
}
