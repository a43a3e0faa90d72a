// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/effect"
	"github.com/gogpu/brush/wgsl"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Option configures pipeline creation.
type Option func(*options)

type options struct {
	wgsl        []wgsl.Option
	sampleCount uint32
}

func defaultOptions() options {
	return options{sampleCount: 1}
}

// WithCustomPaint sets the WGSL source defining get_custom_pattern.
func WithCustomPaint(src string) Option {
	return func(o *options) {
		o.wgsl = append(o.wgsl, wgsl.WithCustomPaint(src))
	}
}

// WithSDFParams sets the distance-field calibration of SDF permutations.
func WithSDFParams(p brush.SDFParams) Option {
	return func(o *options) {
		o.wgsl = append(o.wgsl, wgsl.WithSDFParams(p))
	}
}

// TargetStates returns the color targets of a brush permutation. The first
// target blends premultiplied source-over. The SDF-LCD alpha target
// accumulates per-channel coverage, see CoverageBlend.
func TargetStates(l brush.Layout, format gputypes.TextureFormat) []gputypes.ColorTargetState {
	premul := gputypes.BlendStatePremultiplied()
	targets := []gputypes.ColorTargetState{
		{Format: format, Blend: &premul, WriteMask: gputypes.ColorWriteMaskAll},
	}
	if l.Targets > 1 {
		coverage := CoverageBlend()
		targets = append(targets, gputypes.ColorTargetState{Format: format, Blend: &coverage, WriteMask: gputypes.ColorWriteMaskAll})
	}
	return targets
}

// CoverageBlend is the blend state of the SDF-LCD alpha target:
// dst = src + dst*(1-src) on every channel.
func CoverageBlend() gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrc,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

// WithSampleCount sets the multisample count of the color targets.
func WithSampleCount(n uint32) Option {
	return func(o *options) {
		if n > 0 {
			o.sampleCount = n
		}
	}
}

// resources holds the objects shared by brush and effect pipelines, in
// creation order.
type resources struct {
	device     hal.Device
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// build compiles src and creates the layouts and the render pipeline.
func (r *resources) build(label, src string, entries []gputypes.BindGroupLayoutEntry,
	vertex gputypes.VertexBufferLayout, targets []gputypes.ColorTargetState, sampleCount uint32) error {
	words, err := wgsl.Compile(src)
	if err != nil {
		return fmt.Errorf("gpu: %s: %w", label, err)
	}

	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return fmt.Errorf("gpu: create %s shader: %w", label, err)
	}
	r.shader = shader

	bindLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_bind_layout",
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("gpu: create %s bind group layout: %w", label, err)
	}
	r.bindLayout = bindLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create %s pipeline layout: %w", label, err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{vertex},
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets:    targets,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create %s pipeline: %w", label, err)
	}
	r.pipeline = pipeline
	return nil
}

// destroy releases the objects in reverse creation order.
func (r *resources) destroy() {
	if r.device == nil {
		return
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bindLayout != nil {
		r.device.DestroyBindGroupLayout(r.bindLayout)
		r.bindLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

// BrushPipeline is the render pipeline of one brush permutation together
// with its layouts and fixed samplers.
type BrushPipeline struct {
	resources
	layout   brush.Layout
	samplers map[brush.Image]hal.Sampler
}

// NewBrushPipeline generates, compiles and creates the pipeline of the
// permutation sel rendering into targets of the given format. SDF-LCD
// permutations get a second, unblended target of the same format for the
// per-subpixel alpha.
func NewBrushPipeline(device hal.Device, sel brush.Selector, format gputypes.TextureFormat, opts ...Option) (*BrushPipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	src, err := wgsl.Brush(sel, o.wgsl...)
	if err != nil {
		return nil, err
	}
	l := brush.LayoutFor(sel)
	p := &BrushPipeline{
		resources: resources{device: device},
		layout:    l,
		samplers:  make(map[brush.Image]hal.Sampler),
	}

	name := l.Selector.Name()
	if err := p.build(name, src, BindGroupLayoutEntries(l), VertexLayout(l.Attribs), TargetStates(l, format), o.sampleCount); err != nil {
		p.Destroy()
		return nil, err
	}

	var samplerErr error
	l.Images.Each(func(img brush.Image) {
		if samplerErr != nil {
			return
		}
		s, err := device.CreateSampler(SamplerDescriptor(l, img))
		if err != nil {
			samplerErr = fmt.Errorf("gpu: create %s %s sampler: %w", name, img, err)
			return
		}
		p.samplers[img] = s
	})
	if samplerErr != nil {
		p.Destroy()
		return nil, samplerErr
	}

	brush.Logger().Debug("gpu: brush pipeline created",
		"name", name,
		"stride", l.Attribs.Stride(),
		"bindings", len(l.Bindings()),
		"targets", l.Targets)
	return p, nil
}

// Layout returns the resource layout of the permutation.
func (p *BrushPipeline) Layout() brush.Layout { return p.layout }

// Pipeline returns the render pipeline, or nil after Destroy.
func (p *BrushPipeline) Pipeline() hal.RenderPipeline { return p.pipeline }

// BindGroupLayout returns the layout of bind group 0.
func (p *BrushPipeline) BindGroupLayout() hal.BindGroupLayout { return p.bindLayout }

// Sampler returns the fixed sampler of image slot img, or nil if the
// permutation does not sample img.
func (p *BrushPipeline) Sampler(img brush.Image) hal.Sampler { return p.samplers[img] }

// Destroy releases every GPU object of the pipeline. It is safe to call
// more than once.
func (p *BrushPipeline) Destroy() {
	if p.device != nil {
		for img, s := range p.samplers {
			p.device.DestroySampler(s)
			delete(p.samplers, img)
		}
	}
	p.destroy()
}

// effectVertexStride is position, color, uv, rect and image position.
const effectVertexStride = (2 + 4 + 2 + 4 + 4) * 4

// EffectVertexLayout returns the vertex layout of custom effect pipelines.
func EffectVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: effectVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: wgsl.EffectLocColor},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: wgsl.EffectLocUV},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: wgsl.EffectLocRect},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 48, ShaderLocation: wgsl.EffectLocImagePos},
		},
	}
}

// EffectPipeline is the render pipeline of one custom effect.
type EffectPipeline struct {
	resources
	name    string
	sampler hal.Sampler
}

// NewEffectPipeline generates, compiles and creates the pipeline of a
// custom effect. The input image is bound at slot 0 with a linear,
// clamped sampler at slot 1.
func NewEffectPipeline(device hal.Device, def effect.Definition, format gputypes.TextureFormat, opts ...Option) (*EffectPipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	src, err := wgsl.Effect(def)
	if err != nil {
		return nil, err
	}
	p := &EffectPipeline{resources: resources{device: device}, name: def.Name}

	entries := []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
	premulBlend := gputypes.BlendStatePremultiplied()
	targets := []gputypes.ColorTargetState{
		{Format: format, Blend: &premulBlend, WriteMask: gputypes.ColorWriteMaskAll},
	}

	label := "effect_" + def.Name
	if err := p.build(label, src, entries, EffectVertexLayout(), targets, o.sampleCount); err != nil {
		p.Destroy()
		return nil, err
	}

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("gpu: create %s sampler: %w", label, err)
	}
	p.sampler = sampler

	brush.Logger().Debug("gpu: effect pipeline created", "name", def.Name)
	return p, nil
}

// Name returns the effect name.
func (p *EffectPipeline) Name() string { return p.name }

// Pipeline returns the render pipeline, or nil after Destroy.
func (p *EffectPipeline) Pipeline() hal.RenderPipeline { return p.pipeline }

// BindGroupLayout returns the layout of bind group 0.
func (p *EffectPipeline) BindGroupLayout() hal.BindGroupLayout { return p.bindLayout }

// Sampler returns the input sampler.
func (p *EffectPipeline) Sampler() hal.Sampler { return p.sampler }

// Destroy releases every GPU object of the pipeline. It is safe to call
// more than once.
func (p *EffectPipeline) Destroy() {
	if p.device != nil && p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	p.destroy()
}
