package gfx

// shader.go implements the Shader resource (spec 4.G): construction from
// source text plus the named parameter set spec 4.G enumerates (proj,
// view, time-seconds, main-texture, main-texture-size, screen-texture,
// screen-texture-size, diffuse, specular, plus user-defined). The teacher
// has no shader-parameter abstraction of its own (willow shaders aren't
// modeled at all); this is new code in the teacher's struct-first style,
// reading spec 4.G and Design Notes 9's screen-texture caching policy
// directly.

import (
	"log"

	"github.com/kazikikaziki/kamilo/mathx"
)

// Well-known shader parameter names (spec 4.G).
const (
	ParamProj            = "proj"
	ParamView            = "view"
	ParamTimeSeconds     = "time-seconds"
	ParamMainTexture     = "main-texture"
	ParamMainTextureSize = "main-texture-size"
	ParamScreenTexture   = "screen-texture"
	ParamScreenTextureSize = "screen-texture-size"
	ParamDiffuse         = "diffuse"
	ParamSpecular        = "specular"
)

// ParamKind tags which field of ParamValue is populated.
type ParamKind uint8

const (
	ParamNone ParamKind = iota
	ParamKindFloat
	ParamKindVec2
	ParamKindMat4
	ParamKindColor
	ParamKindTexture
)

// ParamValue is a tagged variant holding one shader parameter's value.
type ParamValue struct {
	Kind    ParamKind
	Float   float64
	Vec2    mathx.Vec2
	Mat4    mathx.Mat4
	Color   Color
	Texture *Texture
}

// Shader is an engine-visible resource wrapping a compiled device shader
// program and its named parameter set.
type Shader struct {
	dev    Device
	handle DeviceShader

	source string
	params map[string]ParamValue

	// usesScreenTexture is true when source references ParamScreenTexture,
	// triggering the lazy screen-copy-before-begin-pass behaviour (Design
	// Notes 9).
	usesScreenTexture bool

	// screenCache is the lazily (re)created texture screen-texture binds
	// to; recreated whenever its size no longer matches the active render
	// target (Design Notes 9: "recreates the cache on any mismatch" and
	// "never alias it with the active target").
	screenCache *Texture
}

// CreateShader compiles source on dev and returns a Shader with an empty
// parameter set. usesScreenTexture is a simple substring scan of source,
// matching how willow-adjacent shader systems in the pack detect named
// sampler references without a full parser.
func CreateShader(dev Device, source string) (*Shader, bool) {
	handle, ok := dev.CreateShader(source)
	if !ok {
		log.Printf("gfx: CreateShader failed (len %d)", len(source))
		return nil, false
	}
	return &Shader{
		dev:               dev,
		handle:            handle,
		source:            source,
		params:            make(map[string]ParamValue),
		usesScreenTexture: containsToken(source, ParamScreenTexture),
	}, true
}

func containsToken(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

// Close releases the device shader. Implements kamilo.Disposer.
func (s *Shader) Close() {
	if s.dev != nil && s.handle != nil {
		s.dev.DestroyShader(s.handle)
	}
	s.handle = nil
	if s.screenCache != nil {
		s.screenCache.Close()
		s.screenCache = nil
	}
}

// SetFloat, SetVec2, SetMat4, SetColor, and SetTexture assign a named
// parameter, creating it if absent (spec 4.G: "plus user-defined").
func (s *Shader) SetFloat(name string, v float64) { s.set(name, ParamValue{Kind: ParamKindFloat, Float: v}) }
func (s *Shader) SetVec2(name string, v mathx.Vec2) { s.set(name, ParamValue{Kind: ParamKindVec2, Vec2: v}) }
func (s *Shader) SetMat4(name string, v mathx.Mat4) { s.set(name, ParamValue{Kind: ParamKindMat4, Mat4: v}) }
func (s *Shader) SetColor(name string, v Color)     { s.set(name, ParamValue{Kind: ParamKindColor, Color: v}) }
func (s *Shader) SetTexture(name string, v *Texture) {
	s.set(name, ParamValue{Kind: ParamKindTexture, Texture: v})
	if name == ParamMainTexture && v != nil {
		s.set(ParamMainTextureSize, ParamValue{Kind: ParamKindVec2, Vec2: mathx.Vec2{X: float64(v.Width), Y: float64(v.Height)}})
	}
}

func (s *Shader) set(name string, v ParamValue) {
	if s.params == nil {
		s.params = make(map[string]ParamValue)
	}
	s.params[name] = v
}

// Param returns the named parameter's value and whether it has been set.
func (s *Shader) Param(name string) (ParamValue, bool) {
	v, ok := s.params[name]
	return v, ok
}

// UsesScreenTexture reports whether s references the screen-texture input.
func (s *Shader) UsesScreenTexture() bool { return s.usesScreenTexture }

// PrepareScreenTexture lazily copies the current render target into s's
// cached screen texture, recreating the cache if its size no longer
// matches. Called immediately before begin-pass for any shader that
// references screen-texture (spec 4.G; Design Notes 9's open question,
// resolved as: recreate on any mismatch, never alias the active target).
func (s *Shader) PrepareScreenTexture(current *Texture) {
	if !s.usesScreenTexture || current == nil {
		return
	}
	if s.screenCache == nil || s.screenCache.Width != current.Width || s.screenCache.Height != current.Height {
		if s.screenCache != nil {
			s.screenCache.Close()
		}
		cache, ok := CreateRenderTarget(s.dev, current.Width, current.Height, current.Format)
		if !ok {
			log.Printf("gfx: PrepareScreenTexture: failed to (re)create %dx%d cache", current.Width, current.Height)
			return
		}
		s.screenCache = cache
	}
	current.Blit(s.screenCache, nil)
	s.SetTexture(ParamScreenTexture, s.screenCache)
	s.set(ParamScreenTextureSize, ParamValue{Kind: ParamKindVec2, Vec2: mathx.Vec2{X: float64(s.screenCache.Width), Y: float64(s.screenCache.Height)}})
}
