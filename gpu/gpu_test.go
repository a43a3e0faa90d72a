// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/effect"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider without HAL access.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

// halProvider additionally exposes HAL objects.
type halProvider struct {
	mockProvider
	device any
	queue  any
}

func (h *halProvider) HalDevice() any { return h.device }
func (h *halProvider) HalQueue() any  { return h.queue }

func TestDeviceFromProvider(t *testing.T) {
	device, queue := createNoopDevice(t)

	got, gotQueue, err := DeviceFromProvider(&halProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("DeviceFromProvider: %v", err)
	}
	if got != device || gotQueue != queue {
		t.Error("provider objects not returned")
	}

	if _, _, err := DeviceFromProvider(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil provider: %v", err)
	}
	if _, _, err := DeviceFromProvider(&mockProvider{}); !errors.Is(err, ErrNoHAL) {
		t.Errorf("provider without HAL: %v", err)
	}
	if _, _, err := DeviceFromProvider(&halProvider{device: "not a device", queue: queue}); !errors.Is(err, ErrNoHAL) {
		t.Errorf("wrong device type: %v", err)
	}
	if _, _, err := DeviceFromProvider(&halProvider{device: device}); !errors.Is(err, ErrNoHAL) {
		t.Errorf("missing queue: %v", err)
	}
}

func TestVertexLayout(t *testing.T) {
	for _, sel := range brush.Selectors() {
		s := brush.Required(sel)
		vl := VertexLayout(s)
		if int(vl.ArrayStride) != s.Stride() {
			t.Errorf("%s: stride %d, want %d", sel.Name(), vl.ArrayStride, s.Stride())
		}
		if len(vl.Attributes) != s.Count()+1 {
			t.Fatalf("%s: %d attributes, want %d", sel.Name(), len(vl.Attributes), s.Count()+1)
		}
		// Attributes are tightly packed in location order.
		end := 0
		for i, a := range vl.Attributes {
			if int(a.ShaderLocation) != i {
				t.Errorf("%s: attribute %d at location %d", sel.Name(), i, a.ShaderLocation)
			}
			if int(a.Offset) != end {
				t.Errorf("%s: attribute %d at offset %d, want %d", sel.Name(), i, a.Offset, end)
			}
			end += formatSize(a.Format)
		}
		if end != s.Stride() {
			t.Errorf("%s: attributes end at %d, stride %d", sel.Name(), end, s.Stride())
		}
	}
}

func formatSize(f gputypes.VertexFormat) int {
	switch f {
	case gputypes.VertexFormatFloat32:
		return 4
	case gputypes.VertexFormatFloat32x2:
		return 8
	default:
		return 16
	}
}

func TestBindGroupLayoutEntries(t *testing.T) {
	l := brush.LayoutFor(brush.Selector{Paint: brush.PaintRadial, Effect: brush.EffectShadow})
	entries := BindGroupLayoutEntries(l)
	bs := l.Bindings()
	if len(entries) != len(bs) {
		t.Fatalf("%d entries, want %d", len(entries), len(bs))
	}
	for i, e := range entries {
		b := bs[i]
		if int(e.Binding) != b.Slot {
			t.Errorf("entry %d binding %d, want %d", i, e.Binding, b.Slot)
		}
		if e.Visibility != gputypes.ShaderStageFragment {
			t.Errorf("entry %d visible to %v", i, e.Visibility)
		}
		switch b.Kind {
		case brush.BindingUniform:
			if e.Buffer == nil || e.Buffer.Type != gputypes.BufferBindingTypeUniform {
				t.Errorf("entry %d (%s) is not a uniform buffer", i, b.Name)
			}
		case brush.BindingTexture:
			if e.Texture == nil {
				t.Errorf("entry %d (%s) is not a texture", i, b.Name)
			}
		case brush.BindingSampler:
			if e.Sampler == nil {
				t.Errorf("entry %d (%s) is not a sampler", i, b.Name)
			}
		}
	}
}

func TestSamplerDescriptor(t *testing.T) {
	plain := brush.LayoutFor(brush.Selector{Paint: brush.PaintPattern, Effect: brush.EffectPath})
	d := SamplerDescriptor(plain, brush.ImagePattern)
	if d.AddressModeU != gputypes.AddressModeRepeat || d.AddressModeV != gputypes.AddressModeRepeat {
		t.Errorf("plain pattern addressing = %v/%v, want repeat", d.AddressModeU, d.AddressModeV)
	}
	if d.MipmapFilter != gputypes.FilterModeNearest {
		t.Errorf("plain pattern mip filter = %v, want nearest", d.MipmapFilter)
	}

	tiled := brush.LayoutFor(brush.Selector{Paint: brush.PaintPattern, Wrap: brush.WrapRepeat, Effect: brush.EffectPath})
	d = SamplerDescriptor(tiled, brush.ImagePattern)
	if d.AddressModeU != gputypes.AddressModeClampToEdge {
		t.Errorf("tiled pattern addressing = %v, want clamp", d.AddressModeU)
	}
	if d.MipmapFilter != gputypes.FilterModeLinear {
		t.Errorf("tiled pattern mip filter = %v, want linear", d.MipmapFilter)
	}
	if d.MagFilter != gputypes.FilterModeLinear || d.MinFilter != gputypes.FilterModeLinear {
		t.Errorf("tiled pattern filters = %v/%v", d.MagFilter, d.MinFilter)
	}
}

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestPackUniforms(t *testing.T) {
	c := brush.Constants{
		RGBA:         brush.RGBA{R: 0.5, G: 0.25, B: 0.125, A: 1},
		Opacity:      0.75,
		Radial:       [2]brush.Vec4{brush.V4(1, 2, 3, 4), brush.V4(5, 6, 7, 8)},
		ShadowColor:  brush.RGBA{A: 0.5},
		ShadowOffset: brush.V2(0.125, -0.25),
		Blend:        0.375,
	}

	rgba, b1 := PackUniforms(brush.LayoutFor(brush.Selector{Effect: brush.EffectRGBA}), c)
	if len(rgba) != 16 || b1 != nil {
		t.Fatalf("rgba blocks = %d/%v bytes", len(rgba), b1)
	}
	if f32At(rgba, 0) != 0.5 || f32At(rgba, 12) != 1 {
		t.Errorf("rgba block = %v", rgba)
	}

	op, _ := PackUniforms(brush.LayoutFor(brush.Selector{Paint: brush.PaintLinear, Effect: brush.EffectPath}), c)
	if len(op) != 16 || f32At(op, 0) != 0.75 {
		t.Errorf("opacity block = %v", op)
	}

	rad, blur := PackUniforms(brush.LayoutFor(brush.Selector{Paint: brush.PaintRadial, Effect: brush.EffectBlur}), c)
	if len(rad) != 32 || f32At(rad, 12) != 4 || f32At(rad, 16) != 5 || f32At(rad, 28) != 8 {
		t.Errorf("radial block = %v", rad)
	}
	if len(blur) != 16 || f32At(blur, 0) != 0.375 {
		t.Errorf("blur block = %v", blur)
	}

	none, sh := PackUniforms(brush.LayoutFor(brush.Selector{Paint: brush.PaintSolid, Effect: brush.EffectShadow}), c)
	if none != nil {
		t.Errorf("solid paint block0 = %v, want nil", none)
	}
	if len(sh) != 32 {
		t.Fatalf("shadow block = %d bytes, want 32", len(sh))
	}
	if f32At(sh, 12) != 0.5 || f32At(sh, 16) != 0.125 || f32At(sh, 20) != -0.25 || f32At(sh, 24) != 0.375 {
		t.Errorf("shadow block = %v", sh)
	}
}

func TestAppendVertex(t *testing.T) {
	v := brush.Varyings{
		Color:    brush.RGBA{R: 1, A: 1},
		UV0:      brush.V2(0.25, 0.5),
		Coverage: 0.5,
		Rect:     brush.V4(0, 0, 1, 1),
	}
	for _, sel := range brush.Selectors() {
		s := brush.Required(sel)
		got := AppendVertex(nil, s, brush.V2(-1, 1), &v)
		if len(got) != s.Stride() {
			t.Errorf("%s: %d bytes, want %d", sel.Name(), len(got), s.Stride())
		}
		if f32At(got, 0) != -1 || f32At(got, 4) != 1 {
			t.Errorf("%s: position not first", sel.Name())
		}
	}

	s := brush.Required(brush.Selector{Paint: brush.PaintLinear, Effect: brush.EffectPathAA})
	got := AppendVertex(nil, s, brush.V2(0, 0), &v)
	if f32At(got, 8) != 0.25 || f32At(got, 12) != 0.5 || f32At(got, 16) != 0.5 {
		t.Errorf("linear path_aa vertex = %v", got)
	}
}

func TestNewBrushPipeline(t *testing.T) {
	device, _ := createNoopDevice(t)
	custom := `fn get_custom_pattern(i: In) -> vec4<f32> {
    return textureSample(pattern, pattern_sampler, i.uv0);
}
`
	for _, sel := range brush.Selectors() {
		t.Run(sel.Name(), func(t *testing.T) {
			p, err := NewBrushPipeline(device, sel, gputypes.TextureFormatBGRA8Unorm, WithCustomPaint(custom))
			if err != nil {
				t.Fatalf("NewBrushPipeline: %v", err)
			}
			if p.Pipeline() == nil || p.BindGroupLayout() == nil {
				t.Fatal("pipeline objects not created")
			}
			l := p.Layout()
			l.Images.Each(func(img brush.Image) {
				if p.Sampler(img) == nil {
					t.Errorf("no sampler for %s", img)
				}
			})
			p.Destroy()
			p.Destroy()
			if p.Pipeline() != nil {
				t.Error("pipeline survives Destroy")
			}
		})
	}
}

func TestTargetStates(t *testing.T) {
	format := gputypes.TextureFormatBGRA8Unorm
	path := TargetStates(brush.LayoutFor(brush.Selector{Paint: brush.PaintSolid, Effect: brush.EffectPath}), format)
	if len(path) != 1 {
		t.Fatalf("path targets = %d, want 1", len(path))
	}
	if path[0].Blend == nil || *path[0].Blend != gputypes.BlendStatePremultiplied() {
		t.Errorf("color target blend = %v, want premultiplied", path[0].Blend)
	}

	lcd := TargetStates(brush.LayoutFor(brush.Selector{Paint: brush.PaintSolid, Effect: brush.EffectSDFLCD}), format)
	if len(lcd) != 2 {
		t.Fatalf("LCD targets = %d, want 2", len(lcd))
	}
	if lcd[1].Blend == nil {
		t.Fatal("alpha target has no blend state")
	}
	b := *lcd[1].Blend
	if b.Color.SrcFactor != gputypes.BlendFactorOne || b.Color.DstFactor != gputypes.BlendFactorOneMinusSrc {
		t.Errorf("alpha target color blend = %+v", b.Color)
	}
	if b.Alpha.SrcFactor != gputypes.BlendFactorOne || b.Alpha.DstFactor != gputypes.BlendFactorOneMinusSrcAlpha {
		t.Errorf("alpha target alpha blend = %+v", b.Alpha)
	}
	if lcd[1].Format != format {
		t.Errorf("alpha target format = %v, want %v", lcd[1].Format, format)
	}
}

func TestNewBrushPipelineErrors(t *testing.T) {
	if _, err := NewBrushPipeline(nil, brush.Selector{Paint: brush.PaintSolid, Effect: brush.EffectPath}, gputypes.TextureFormatBGRA8Unorm); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil device: %v", err)
	}
	device, _ := createNoopDevice(t)
	if _, err := NewBrushPipeline(device, brush.Selector{}, gputypes.TextureFormatBGRA8Unorm); !errors.Is(err, brush.ErrNoEffect) {
		t.Errorf("invalid selector: %v", err)
	}
	custom := brush.Selector{Paint: brush.PaintPattern, Wrap: brush.WrapCustom, Effect: brush.EffectSDF}
	if _, err := NewBrushPipeline(device, custom, gputypes.TextureFormatBGRA8Unorm); !errors.Is(err, brush.ErrNoCustomPaint) {
		t.Errorf("custom without source: %v", err)
	}
}

func TestNewEffectPipeline(t *testing.T) {
	device, _ := createNoopDevice(t)
	for _, def := range effect.Builtins() {
		p, err := NewEffectPipeline(device, def, gputypes.TextureFormatRGBA8Unorm, WithSampleCount(4))
		if err != nil {
			t.Fatalf("%s: %v", def.Name, err)
		}
		if p.Name() != def.Name || p.Pipeline() == nil || p.Sampler() == nil || p.BindGroupLayout() == nil {
			t.Errorf("%s: incomplete pipeline", def.Name)
		}
		p.Destroy()
		p.Destroy()
	}

	if _, err := NewEffectPipeline(nil, effect.Desaturate(1), gputypes.TextureFormatRGBA8Unorm); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil device: %v", err)
	}
}

func TestEffectVertexLayout(t *testing.T) {
	vl := EffectVertexLayout()
	end := 0
	for _, a := range vl.Attributes {
		if int(a.Offset) != end {
			t.Errorf("location %d at offset %d, want %d", a.ShaderLocation, a.Offset, end)
		}
		end += formatSize(a.Format)
	}
	if int(vl.ArrayStride) != end {
		t.Errorf("stride %d, want %d", vl.ArrayStride, end)
	}
}
