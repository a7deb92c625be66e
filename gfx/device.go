// Package gfx implements the resource and render-command layer (spec
// components G and H): texture/shader/mesh/material objects with
// device-lost recovery, and a draw-list fuser that unites compatible
// primitive batches before submission. The package is graphics-API
// agnostic; spec 1 explicitly assumes "a backend... is assumed available"
// and names only the abstract device contract (spec 6). The one concrete
// backend wired here is Ebitengine, the teacher's own dependency.
package gfx

import "github.com/kazikikaziki/kamilo/mathx"

// PixelFormat names a texture's pixel layout.
type PixelFormat uint8

const (
	FormatRGBA8 PixelFormat = iota
	FormatRGBA16F
)

// PrimitiveType names the primitive topology a draw call submits.
type PrimitiveType uint8

const (
	// PrimitiveTriangles and PrimitiveLines may be fused across draw-list
	// items (spec 4.H); strips and fans cannot, since concatenating them
	// would change their connectivity.
	PrimitiveTriangles PrimitiveType = iota
	PrimitiveLines
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
)

// BlendMode names a fixed-function blend configuration.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdd
	BlendMultiply
	BlendScreen
	BlendNone
)

// FilterMode names a texture sampling filter.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// WrapMode names a texture address (UV wrap) mode.
type WrapMode uint8

const (
	WrapClamp WrapMode = iota
	WrapRepeat
	WrapMirror
)

// ClearFlags names which buffers a Clear call should affect.
type ClearFlags uint8

const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
	ClearStencil
)

// StencilState configures the stencil test.
type StencilState struct {
	Enabled   bool
	Ref       uint8
	ReadMask  uint8
	WriteMask uint8
}

// DepthState configures the depth test.
type DepthState struct {
	TestEnabled  bool
	WriteEnabled bool
}

// ColorWriteMask selects which colour channels a draw call writes.
type ColorWriteMask uint8

const (
	WriteR ColorWriteMask = 1 << iota
	WriteG
	WriteB
	WriteA
	WriteAll = WriteR | WriteG | WriteB | WriteA
)

// Vertex is the engine-wide shared vertex layout (spec 6): position(3f) +
// diffuse(rgba8) + specular(rgba8) + uv0(2f) + uv1(2f).
type Vertex struct {
	X, Y, Z          float32
	Diffuse          Color32
	Specular         Color32
	U0, V0, U1, V1   float32
}

// Device is the abstract graphics backend contract a core consumes (spec
// 6). A concrete backend implements it once; the core never names a
// specific graphics API directly.
type Device interface {
	// CreateTexture allocates a managed (non-render-target) texture.
	CreateTexture(w, h int, format PixelFormat) (DeviceTexture, bool)
	// CreateRenderTarget allocates a texture usable as a render target.
	CreateRenderTarget(w, h int, format PixelFormat) (DeviceTexture, bool)
	// DestroyTexture releases a device-side texture.
	DestroyTexture(t DeviceTexture)

	// CreateShader compiles shader source text into a device program.
	CreateShader(source string) (DeviceShader, bool)
	// DestroyShader releases a device-side shader.
	DestroyShader(s DeviceShader)

	PushRenderTarget(t DeviceTexture)
	PopRenderTarget()
	PushRenderState()
	PopRenderState()

	SetViewport(x, y, w, h int)
	SetColorWriteMask(mask ColorWriteMask)
	SetStencil(s StencilState)
	SetDepth(d DepthState)
	SetBlend(b BlendMode)
	SetFilter(f FilterMode)
	SetAddress(w WrapMode)
	SetProjection(m mathx.Mat4)
	SetView(m mathx.Mat4)

	Clear(c Color, depth float64, stencil int, flags ClearFlags)

	// ReadPixels returns a copy of t's pixels in RGBA8 order, used by
	// Texture.Lock and by device-lost backup.
	ReadPixels(t DeviceTexture) []byte
	// WritePixels uploads pixels (RGBA8 order) into t, used by
	// Texture.Unlock and by device-reset restore.
	WritePixels(t DeviceTexture, pixels []byte)
	// FillTexture writes a uniform colour into the channels selected by
	// mask across all of t.
	FillTexture(t DeviceTexture, c Color, mask ColorWriteMask)
	// Blit copies src onto dst, optionally through a shader/blend
	// configuration. shader == nil means a plain copy.
	Blit(src, dst DeviceTexture, shader DeviceShader, blend BlendMode, filter FilterMode)

	// DrawVertices submits one primitive call. indices == nil means a
	// non-indexed draw using verts in order.
	DrawVertices(verts []Vertex, indices []uint32, primitive PrimitiveType, shader DeviceShader, tex DeviceTexture)

	BeginScene()
	EndScene()
	Present()

	// NotifyDeviceLost and NotifyDeviceReset drive the device-lost
	// recovery contract (spec 4.G, Design Notes 9): lost copies live
	// render-target pixels to their backup and releases device objects;
	// reset recreates device objects at the same size/format and restores
	// from backup. Managed (non-target) textures are unaffected by either.
	NotifyDeviceLost()
	NotifyDeviceReset()
}

// DeviceTexture and DeviceShader are opaque backend-owned handles a Device
// implementation returns from CreateTexture/CreateShader and later
// receives back via DestroyTexture/DestroyShader/DrawVertices/
// Push/PopRenderTarget. A nil-ish zero value means "no texture"/"no
// shader" (e.g. a non-indexed untextured draw).
type DeviceTexture interface{ deviceTextureMarker() }
type DeviceShader interface{ deviceShaderMarker() }
