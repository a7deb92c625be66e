package gfx

// ebitendevice.go implements Device on github.com/hajimehoshi/ebiten/v2,
// the one backend spec 1 assumes available and the teacher's own
// dependency. Dispatch is adapted from the teacher's batch.go
// (submitMesh/submitSprite's DrawImage/DrawTriangles split) and willow.go's
// BlendMode.EbitenBlend() table, generalized from willow's fixed
// BlendMode/sprite model to the spec's abstract Device contract (spec 6).

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kazikikaziki/kamilo/mathx"
)

// ebitenTexture wraps an *ebiten.Image behind the opaque DeviceTexture
// handle the Device interface exposes to callers.
type ebitenTexture struct {
	img          *ebiten.Image
	renderTarget bool
}

func (*ebitenTexture) deviceTextureMarker() {}

// ebitenShader wraps a compiled *ebiten.Shader.
type ebitenShader struct {
	sh *ebiten.Shader
}

func (*ebitenShader) deviceShaderMarker() {}

// EbitenDevice implements Device against a single ebiten.Image render
// target stack. It is the concrete backend Run (in the root kamilo
// package) installs before handing control to ebiten.RunGame.
type EbitenDevice struct {
	targets []*ebiten.Image // render-target stack; targets[len-1] is current
	screen  *ebiten.Image   // the frame's final presentation surface

	proj mathx.Mat4
	view mathx.Mat4

	blend   BlendMode
	filter  FilterMode
	wrap    WrapMode
	stencil StencilState
	depth   DepthState
	mask    ColorWriteMask

	stateStack []ebitenState
}

type ebitenState struct {
	blend   BlendMode
	filter  FilterMode
	wrap    WrapMode
	stencil StencilState
	depth   DepthState
	mask    ColorWriteMask
}

// NewEbitenDevice returns a device with no active render target. SetScreen
// must be called once per frame (from Run's Draw callback) before any
// draw commands are submitted.
func NewEbitenDevice() *EbitenDevice {
	return &EbitenDevice{blend: BlendNormal, filter: FilterLinear, mask: WriteAll}
}

// SetScreen installs screen as both the presentation surface and the
// initial (bottom-of-stack) render target for the frame about to be
// built. Called once per frame by Run before RenderBuild/RenderFlush.
func (d *EbitenDevice) SetScreen(screen *ebiten.Image) {
	d.screen = screen
	d.targets = d.targets[:0]
	d.targets = append(d.targets, screen)
}

// ScreenTexture returns a Texture view of the frame's presentation
// surface, suitable for DrawList.SetScreenSource. Returns nil before the
// first SetScreen call.
func (d *EbitenDevice) ScreenTexture() *Texture {
	if d.screen == nil {
		return nil
	}
	b := d.screen.Bounds()
	return &Texture{
		dev:          d,
		handle:       &ebitenTexture{img: d.screen, renderTarget: true},
		Width:        b.Dx(),
		Height:       b.Dy(),
		Format:       FormatRGBA8,
		RenderTarget: true,
	}
}

func (d *EbitenDevice) current() *ebiten.Image {
	if len(d.targets) == 0 {
		return d.screen
	}
	return d.targets[len(d.targets)-1]
}

// CreateTexture allocates a managed ebiten.Image.
func (d *EbitenDevice) CreateTexture(w, h int, format PixelFormat) (DeviceTexture, bool) {
	if w <= 0 || h <= 0 {
		return nil, false
	}
	return &ebitenTexture{img: ebiten.NewImage(w, h)}, true
}

// CreateRenderTarget allocates an ebiten.Image flagged as a render target.
func (d *EbitenDevice) CreateRenderTarget(w, h int, format PixelFormat) (DeviceTexture, bool) {
	if w <= 0 || h <= 0 {
		return nil, false
	}
	return &ebitenTexture{img: ebiten.NewImage(w, h), renderTarget: true}, true
}

// DestroyTexture releases the backing ebiten.Image.
func (d *EbitenDevice) DestroyTexture(t DeviceTexture) {
	if et, ok := t.(*ebitenTexture); ok && et.img != nil {
		et.img.Deallocate()
		et.img = nil
	}
}

// CreateShader compiles Kage source into an ebiten.Shader.
func (d *EbitenDevice) CreateShader(source string) (DeviceShader, bool) {
	sh, err := ebiten.NewShader([]byte(source))
	if err != nil {
		return nil, false
	}
	return &ebitenShader{sh: sh}, true
}

// DestroyShader is a no-op; ebiten.Shader has no explicit release call.
func (d *EbitenDevice) DestroyShader(s DeviceShader) {}

// PushRenderTarget makes t the active draw target.
func (d *EbitenDevice) PushRenderTarget(t DeviceTexture) {
	et, ok := t.(*ebitenTexture)
	if !ok || et.img == nil {
		return
	}
	d.targets = append(d.targets, et.img)
}

// PopRenderTarget restores the previous draw target.
func (d *EbitenDevice) PopRenderTarget() {
	if len(d.targets) > 1 {
		d.targets = d.targets[:len(d.targets)-1]
	}
}

// PushRenderState saves the current fixed-function state.
func (d *EbitenDevice) PushRenderState() {
	d.stateStack = append(d.stateStack, ebitenState{
		blend: d.blend, filter: d.filter, wrap: d.wrap,
		stencil: d.stencil, depth: d.depth, mask: d.mask,
	})
}

// PopRenderState restores the fixed-function state saved by the matching
// PushRenderState.
func (d *EbitenDevice) PopRenderState() {
	n := len(d.stateStack)
	if n == 0 {
		return
	}
	s := d.stateStack[n-1]
	d.stateStack = d.stateStack[:n-1]
	d.blend, d.filter, d.wrap = s.blend, s.filter, s.wrap
	d.stencil, d.depth, d.mask = s.stencil, s.depth, s.mask
}

// SetViewport is a no-op on Ebitengine: viewport is implied by the active
// render target's own size, which callers control via texture size.
func (d *EbitenDevice) SetViewport(x, y, w, h int) {}

func (d *EbitenDevice) SetColorWriteMask(mask ColorWriteMask) { d.mask = mask }
func (d *EbitenDevice) SetStencil(s StencilState)             { d.stencil = s }
func (d *EbitenDevice) SetDepth(dp DepthState)                { d.depth = dp }
func (d *EbitenDevice) SetBlend(b BlendMode)                  { d.blend = b }
func (d *EbitenDevice) SetFilter(f FilterMode)                { d.filter = f }
func (d *EbitenDevice) SetAddress(w WrapMode)                 { d.wrap = w }
func (d *EbitenDevice) SetProjection(m mathx.Mat4)            { d.proj = m }
func (d *EbitenDevice) SetView(m mathx.Mat4)                  { d.view = m }

// Clear fills the active render target. Ebitengine has no depth/stencil
// buffer of its own, so only ClearColor has an effect.
func (d *EbitenDevice) Clear(c Color, depth float64, stencil int, flags ClearFlags) {
	if flags&ClearColor == 0 {
		return
	}
	img := d.current()
	if img == nil {
		return
	}
	img.Fill(toNRGBA(c))
}

// ReadPixels copies the active texture's pixels out in RGBA8 order.
func (d *EbitenDevice) ReadPixels(t DeviceTexture) []byte {
	et, ok := t.(*ebitenTexture)
	if !ok || et.img == nil {
		return nil
	}
	bounds := et.img.Bounds()
	buf := make([]byte, 4*bounds.Dx()*bounds.Dy())
	et.img.ReadPixels(buf)
	return buf
}

// WritePixels uploads RGBA8-order pixels into t.
func (d *EbitenDevice) WritePixels(t DeviceTexture, pixels []byte) {
	et, ok := t.(*ebitenTexture)
	if !ok || et.img == nil {
		return
	}
	bounds := et.img.Bounds()
	et.img.WritePixels(pixels[:4*bounds.Dx()*bounds.Dy()])
}

// FillTexture writes a uniform colour into the channels selected by mask.
// Ebitengine's Fill always writes all channels; a partial mask is emulated
// by reading back, overwriting the unmasked channels, and writing again.
func (d *EbitenDevice) FillTexture(t DeviceTexture, c Color, mask ColorWriteMask) {
	et, ok := t.(*ebitenTexture)
	if !ok || et.img == nil {
		return
	}
	if mask == WriteAll {
		et.img.Fill(toNRGBA(c))
		return
	}
	pixels := d.ReadPixels(t)
	fill := c.ToColor32()
	for i := 0; i+4 <= len(pixels); i += 4 {
		if mask&WriteR != 0 {
			pixels[i] = byte(fill)
		}
		if mask&WriteG != 0 {
			pixels[i+1] = byte(fill >> 8)
		}
		if mask&WriteB != 0 {
			pixels[i+2] = byte(fill >> 16)
		}
		if mask&WriteA != 0 {
			pixels[i+3] = byte(fill >> 24)
		}
	}
	d.WritePixels(t, pixels)
}

// Blit copies src onto dst, through shader/blend/filter when given.
func (d *EbitenDevice) Blit(src, dst DeviceTexture, shader DeviceShader, blend BlendMode, filter FilterMode) {
	srcT, ok := src.(*ebitenTexture)
	if !ok || srcT.img == nil {
		return
	}
	dstT, ok := dst.(*ebitenTexture)
	if !ok || dstT.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{Blend: blendModeToEbiten(blend)}
	if filter == FilterLinear {
		op.Filter = ebiten.FilterLinear
	} else {
		op.Filter = ebiten.FilterNearest
	}
	dstT.img.DrawImage(srcT.img, op)
}

// DrawVertices submits one fused draw-list item via DrawTriangles32 (plain
// untextured/unshaded triangles fall back to ebiten's white 1x1 pixel so
// the vertex colour channel still applies).
func (d *EbitenDevice) DrawVertices(verts []Vertex, indices []uint32, primitive PrimitiveType, shader DeviceShader, tex DeviceTexture) {
	target := d.current()
	if target == nil || len(verts) == 0 {
		return
	}

	evs := make([]ebiten.Vertex, len(verts))
	for i, v := range verts {
		c := v.Diffuse.ToColor()
		evs[i] = ebiten.Vertex{
			DstX: v.X, DstY: v.Y,
			SrcX: v.U0, SrcY: v.V0,
			ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: float32(c.A),
		}
	}

	idx := indices
	if idx == nil {
		idx = sequentialIndices(len(verts), primitive)
	}

	var img *ebiten.Image
	if et, ok := tex.(*ebitenTexture); ok && et.img != nil {
		img = et.img
	} else {
		img = whitePixel()
	}

	op := &ebiten.DrawTrianglesOptions{
		Blend: blendModeToEbiten(d.blend),
	}
	if d.filter == FilterLinear {
		op.Filter = ebiten.FilterLinear
	} else {
		op.Filter = ebiten.FilterNearest
	}
	if es, ok := shader.(*ebitenShader); ok && es.sh != nil {
		target.DrawTrianglesShader32(evs, idx, es.sh, &ebiten.DrawTrianglesShaderOptions{
			Images: [4]*ebiten.Image{img},
			Blend:  op.Blend,
		})
		return
	}
	target.DrawTriangles32(evs, idx, img, op)
}

func sequentialIndices(n int, prim PrimitiveType) []uint32 {
	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}
	return idx
}

var whitePixelImg *ebiten.Image

func whitePixel() *ebiten.Image {
	if whitePixelImg == nil {
		whitePixelImg = ebiten.NewImage(1, 1)
		whitePixelImg.Fill(color.White)
	}
	return whitePixelImg
}

func toNRGBA(c Color) color.NRGBA {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// blendModeToEbiten maps a BlendMode to its ebiten.Blend value, adapted
// from the teacher's BlendMode.EbitenBlend table (willow.go).
func blendModeToEbiten(b BlendMode) ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendNone:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorZero,
			BlendFactorDestinationAlpha: ebiten.BlendFactorZero,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// BeginScene/EndScene bracket a frame's draw-list submission. Ebitengine
// has no explicit begin/end; these exist so Device callers have a
// consistent contract across backends.
func (d *EbitenDevice) BeginScene() {}
func (d *EbitenDevice) EndScene()   {}

// Present is a no-op: Ebitengine presents the screen image automatically
// after Game.Draw returns.
func (d *EbitenDevice) Present() {}

// NotifyDeviceLost and NotifyDeviceReset exist to satisfy Device; real GPU
// device loss is not observable through Ebitengine's API (Design Notes 9),
// so both are no-ops here. Texture.OnDeviceLost/OnDeviceReset are
// exercised by tests that call them directly on textures backed by a fake
// Device.
func (d *EbitenDevice) NotifyDeviceLost()  {}
func (d *EbitenDevice) NotifyDeviceReset() {}

var _ Device = (*EbitenDevice)(nil)
