package brush

import "testing"

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		sel      Selector
		uniforms Uniforms
		images   []Image
		targets  int
	}{
		{Selector{Effect: EffectRGBA}, UniformRGBA, nil, 1},
		{Selector{Effect: EffectMask}, 0, nil, 1},
		{Selector{Paint: PaintSolid, Effect: EffectPath}, 0, nil, 1},
		{Selector{Paint: PaintLinear, Effect: EffectPathAA}, UniformOpacity, []Image{ImageRamps}, 1},
		{Selector{Paint: PaintRadial, Effect: EffectPath}, UniformRadial, []Image{ImageRamps}, 1},
		{Selector{Paint: PaintPattern, Wrap: WrapRepeat, Effect: EffectOpacity}, UniformOpacity, []Image{ImagePattern, ImageImage}, 1},
		{Selector{Paint: PaintSolid, Effect: EffectShadow}, UniformShadow | UniformBlend, []Image{ImageImage, ImageShadow}, 1},
		{Selector{Paint: PaintSolid, Effect: EffectBlur}, UniformBlend, []Image{ImageImage, ImageShadow}, 1},
		{Selector{Paint: PaintSolid, Effect: EffectSDF}, 0, []Image{ImageGlyphs}, 1},
		{Selector{Paint: PaintSolid, Effect: EffectSDFLCD}, 0, []Image{ImageGlyphs}, 2},
		{Selector{Effect: EffectDownsample}, 0, []Image{ImagePattern}, 1},
		{Selector{Effect: EffectUpsample}, 0, []Image{ImagePattern, ImageImage}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.sel.Name(), func(t *testing.T) {
			l := LayoutFor(tt.sel)
			if l.Uniforms != tt.uniforms {
				t.Errorf("Uniforms = %b, want %b", l.Uniforms, tt.uniforms)
			}
			var want Images
			for _, img := range tt.images {
				want = want.With(img)
			}
			if l.Images != want {
				t.Errorf("Images = %b, want %b", l.Images, want)
			}
			if l.Targets != tt.targets {
				t.Errorf("Targets = %d, want %d", l.Targets, tt.targets)
			}
			if l.Attribs != Required(tt.sel) {
				t.Errorf("Attribs = %v, want %v", l.Attribs, Required(tt.sel))
			}
		})
	}
}

func TestLayoutBindings(t *testing.T) {
	l := LayoutFor(Selector{Paint: PaintLinear, Effect: EffectShadow})
	got := l.Bindings()
	want := []Binding{
		{Slot: 0, Kind: BindingUniform, Name: "buffer0", Block: 0},
		{Slot: 1, Kind: BindingUniform, Name: "buffer1", Block: 1},
		{Slot: 2, Kind: BindingTexture, Name: "ramps", Image: ImageRamps},
		{Slot: 3, Kind: BindingSampler, Name: "ramps_sampler", Image: ImageRamps},
		{Slot: 4, Kind: BindingTexture, Name: "image", Image: ImageImage},
		{Slot: 5, Kind: BindingSampler, Name: "image_sampler", Image: ImageImage},
		{Slot: 6, Kind: BindingTexture, Name: "shadow", Image: ImageShadow},
		{Slot: 7, Kind: BindingSampler, Name: "shadow_sampler", Image: ImageShadow},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Bindings) = %d, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Bindings[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if b := LayoutFor(Selector{Effect: EffectMask}).Bindings(); len(b) != 0 {
		t.Errorf("mask bindings = %+v, want none", b)
	}
}

func TestLayoutSampling(t *testing.T) {
	plain := LayoutFor(Selector{Paint: PaintPattern, Effect: EffectPath})
	if st := plain.Sampling(ImagePattern); st.AddressU != AddressRepeat || st.AddressV != AddressRepeat {
		t.Errorf("plain pattern sampler = %+v, want repeat addressing", st)
	}
	tiled := LayoutFor(Selector{Paint: PaintPattern, Wrap: WrapMirror, Effect: EffectPath})
	if st := tiled.Sampling(ImagePattern); !st.Mipmaps || st.AddressU != AddressClamp {
		t.Errorf("tiled pattern sampler = %+v, want clamped with mipmaps", st)
	}
	down := LayoutFor(Selector{Effect: EffectDownsample})
	if st := down.Sampling(ImagePattern); st != (SamplerState{Filter: FilterLinear}) {
		t.Errorf("downsample sampler = %+v, want linear clamp", st)
	}
}
