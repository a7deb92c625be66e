package gfx

import "testing"

func TestCreateShaderDetectsScreenTextureUsage(t *testing.T) {
	dev := newFakeDevice()

	s, ok := CreateShader(dev, "uniform sampler2D screen-texture;")
	if !ok {
		t.Fatal("CreateShader failed")
	}
	if !s.UsesScreenTexture() {
		t.Fatal("UsesScreenTexture() = false for source referencing screen-texture")
	}

	plain, ok := CreateShader(dev, "uniform sampler2D main-texture;")
	if !ok {
		t.Fatal("CreateShader failed")
	}
	if plain.UsesScreenTexture() {
		t.Fatal("UsesScreenTexture() = true for source that never mentions it")
	}
}

func TestShaderSetTextureAlsoSetsMainTextureSize(t *testing.T) {
	dev := newFakeDevice()
	s, _ := CreateShader(dev, "")
	tex, _ := CreateTexture(dev, 16, 8, FormatRGBA8)

	s.SetTexture(ParamMainTexture, tex)

	size, ok := s.Param(ParamMainTextureSize)
	if !ok {
		t.Fatal("ParamMainTextureSize was not set")
	}
	if size.Vec2.X != 16 || size.Vec2.Y != 8 {
		t.Fatalf("main-texture-size = %+v, want (16, 8)", size.Vec2)
	}
}

func TestShaderParamRoundTrip(t *testing.T) {
	dev := newFakeDevice()
	s, _ := CreateShader(dev, "")
	s.SetFloat("strength", 0.75)

	v, ok := s.Param("strength")
	if !ok || v.Float != 0.75 {
		t.Fatalf("Param(strength) = (%+v, %v), want (0.75, true)", v, ok)
	}
	if _, ok := s.Param("missing"); ok {
		t.Fatal("Param reported a hit for a name never set")
	}
}

func TestPrepareScreenTextureRecreatesCacheOnSizeMismatch(t *testing.T) {
	dev := newFakeDevice()
	s, _ := CreateShader(dev, "screen-texture")
	rt, _ := CreateRenderTarget(dev, 8, 8, FormatRGBA8)

	s.PrepareScreenTexture(rt)
	first, ok := s.Param(ParamScreenTexture)
	if !ok {
		t.Fatal("screen-texture param not set after PrepareScreenTexture")
	}
	firstTex := first.Texture

	rt2, _ := CreateRenderTarget(dev, 16, 16, FormatRGBA8)
	s.PrepareScreenTexture(rt2)
	second, _ := s.Param(ParamScreenTexture)
	if second.Texture == firstTex {
		t.Fatal("expected a new cache texture after a render-target size change")
	}
	if second.Texture.Width != 16 || second.Texture.Height != 16 {
		t.Fatalf("cache size = %dx%d, want 16x16", second.Texture.Width, second.Texture.Height)
	}
}

func TestPrepareScreenTextureNoOpWhenShaderDoesNotUseIt(t *testing.T) {
	dev := newFakeDevice()
	s, _ := CreateShader(dev, "main-texture")
	rt, _ := CreateRenderTarget(dev, 4, 4, FormatRGBA8)

	s.PrepareScreenTexture(rt)
	if _, ok := s.Param(ParamScreenTexture); ok {
		t.Fatal("screen-texture param should not be set for a shader that never references it")
	}
}
