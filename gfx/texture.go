package gfx

// texture.go implements the Texture resource handle (spec 4.G): size,
// pixel format, render-target flag, and the device-lost/reset recovery
// contract. Grounded on the teacher's rendertarget.go/rendertexture.go
// (pooled render-target Deallocate/recreate pattern), generalized from
// willow's pooled-RT-for-a-frame use case to the spec's full device-lost
// contract: copy pixels to a backup on loss, recreate the device object and
// restore from backup on reset. Managed (non-target) textures are not
// affected by device loss, per spec.

import "log"

// Texture is an engine-visible resource object wrapping a device texture.
// It implements Disposer so it can be wrapped in a [kamilo.Handle] for
// shared ownership between an asset bank, scene-graph components, and
// draw-list items.
type Texture struct {
	dev    Device
	handle DeviceTexture

	Width, Height int
	Format        PixelFormat
	RenderTarget  bool

	// backup holds a CPU-side copy of a render target's pixels across a
	// device-lost/reset cycle. nil for managed (non-target) textures,
	// which survive device loss unaffected.
	backup []byte
}

// CreateTexture allocates a managed texture of the given size and format.
func CreateTexture(dev Device, w, h int, format PixelFormat) (*Texture, bool) {
	handle, ok := dev.CreateTexture(w, h, format)
	if !ok {
		log.Printf("gfx: CreateTexture(%d,%d) failed", w, h)
		return nil, false
	}
	return &Texture{dev: dev, handle: handle, Width: w, Height: h, Format: format}, true
}

// CreateRenderTarget allocates a texture usable as a render target. Render
// targets carry the backup buffer device-lost recovery needs.
func CreateRenderTarget(dev Device, w, h int, format PixelFormat) (*Texture, bool) {
	handle, ok := dev.CreateRenderTarget(w, h, format)
	if !ok {
		log.Printf("gfx: CreateRenderTarget(%d,%d) failed", w, h)
		return nil, false
	}
	return &Texture{dev: dev, handle: handle, Width: w, Height: h, Format: format, RenderTarget: true}, true
}

// Close releases the device texture. Implements kamilo.Disposer so Texture
// can be wrapped in a Handle.
func (t *Texture) Close() {
	if t.dev != nil && t.handle != nil {
		t.dev.DestroyTexture(t.handle)
	}
	t.handle = nil
}

// DeviceHandle returns the backend-owned handle for use with Device calls
// that take a DeviceTexture (PushRenderTarget, DrawVertices).
func (t *Texture) DeviceHandle() DeviceTexture { return t.handle }

// OnDeviceLost backs up a render target's pixels and releases its device
// object. Managed textures are unaffected (spec 4.G).
func (t *Texture) OnDeviceLost(readPixels func(DeviceTexture) []byte) {
	if !t.RenderTarget {
		return
	}
	t.backup = readPixels(t.handle)
	if t.dev != nil && t.handle != nil {
		t.dev.DestroyTexture(t.handle)
	}
	t.handle = nil
}

// OnDeviceReset recreates the device object at the same size/format and
// restores it from the backup copy taken by OnDeviceLost.
func (t *Texture) OnDeviceReset(writePixels func(DeviceTexture, []byte)) bool {
	if !t.RenderTarget {
		return true
	}
	handle, ok := t.dev.CreateRenderTarget(t.Width, t.Height, t.Format)
	if !ok {
		log.Printf("gfx: OnDeviceReset: recreate render target %dx%d failed", t.Width, t.Height)
		return false
	}
	t.handle = handle
	if t.backup != nil {
		writePixels(t.handle, t.backup)
		t.backup = nil
	}
	return true
}

// Lock exposes t's raw pixel span (RGBA8 order) for direct manipulation.
// Pair with Unlock to commit changes back to the device.
func (t *Texture) Lock() []byte {
	if t.dev == nil || t.handle == nil {
		return nil
	}
	return t.dev.ReadPixels(t.handle)
}

// Unlock uploads pixels (as returned by a prior Lock, possibly modified)
// back to the device texture.
func (t *Texture) Unlock(pixels []byte) {
	if t.dev != nil && t.handle != nil {
		t.dev.WritePixels(t.handle, pixels)
	}
}

// Fill writes a uniform colour into the channels selected by mask across
// the whole texture.
func (t *Texture) Fill(c Color, mask ColorWriteMask) {
	if t.dev != nil && t.handle != nil {
		t.dev.FillTexture(t.handle, c, mask)
	}
}

// Blit copies t onto dst, optionally through mat's shader/blend/filter. A
// nil mat performs a plain copy.
func (t *Texture) Blit(dst *Texture, mat *Material) {
	if t.dev == nil || dst == nil {
		return
	}
	var shader DeviceShader
	blend := BlendNormal
	filter := FilterLinear
	if mat != nil {
		if mat.Shader != nil {
			shader = mat.Shader.handle
		}
		blend = mat.Blend
		filter = mat.Filter
	}
	t.dev.Blit(t.handle, dst.handle, shader, blend, filter)
}

// ExportImage returns a copy of t's pixels (RGBA8 order), suitable for
// handing to an external image encoder. Equivalent to Lock without the
// implied intent to Unlock afterward.
func (t *Texture) ExportImage() []byte {
	return t.Lock()
}

// Descriptor is a read-only snapshot of a texture's static properties.
type Descriptor struct {
	Width, Height int
	Format        PixelFormat
	RenderTarget  bool
}

// Query returns t's descriptor.
func (t *Texture) Query() Descriptor {
	return Descriptor{Width: t.Width, Height: t.Height, Format: t.Format, RenderTarget: t.RenderTarget}
}
