package brush

import "testing"

func TestFractAndMirror(t *testing.T) {
	tests := []struct {
		x, fract, mirror float32
	}{
		{0.25, 0.25, 0.25},
		{1.25, 0.25, 0.75},
		{2.25, 0.25, 0.25},
		{-0.25, 0.75, 0.25},
		{-1.25, 0.75, 0.75},
	}
	for _, tt := range tests {
		if got := Fract(tt.x); got != tt.fract {
			t.Errorf("Fract(%v) = %v, want %v", tt.x, got, tt.fract)
		}
		if got := MirrorWrap(tt.x); got != tt.mirror {
			t.Errorf("MirrorWrap(%v) = %v, want %v", tt.x, got, tt.mirror)
		}
	}
}

func TestInsideRect(t *testing.T) {
	r := V4(0.25, 0.25, 0.75, 0.75)
	tests := []struct {
		uv   Vec2
		want float32
	}{
		{V2(0.5, 0.5), 1},
		{V2(0.25, 0.75), 1}, // bounds are inclusive
		{V2(0.2, 0.5), 0},
		{V2(0.5, 0.8), 0},
		{V2(nan32(), 0.5), 0},
	}
	for _, tt := range tests {
		if got := InsideRect(tt.uv, r); got != tt.want {
			t.Errorf("InsideRect(%v) = %v, want %v", tt.uv, got, tt.want)
		}
	}
}

func nan32() float32 {
	var zero float32
	return zero / zero
}

func patternResources() *Resources {
	return &Resources{Pattern: uvColor, Constants: Constants{Opacity: 1}}
}

func TestPatternClamp(t *testing.T) {
	sh := mustCompile(t, Selector{Paint: PaintPattern, Wrap: WrapClamp, Effect: EffectPath})
	res := patternResources()
	rect := V4(0.25, 0.25, 0.75, 0.75)

	inside := sh.Shade(res, Varyings{UV0: V2(0.5, 0.375), Rect: rect})
	if want := uvColor(V2(0.5, 0.375)); inside.Color != want {
		t.Errorf("inside = %v, want raw sample %v", inside.Color, want)
	}

	for _, uv := range []Vec2{V2(0.1, 0.5), V2(0.5, 0.9), V2(0.8, 0.8), V2(-1, -1)} {
		out := sh.Shade(res, Varyings{UV0: uv, Rect: rect})
		if out.Color != Transparent {
			t.Errorf("outside %v = %v, want transparent", uv, out.Color)
		}
	}
}

func TestPatternRepeatPeriodic(t *testing.T) {
	sh := mustCompile(t, Selector{Paint: PaintPattern, Wrap: WrapRepeat, Effect: EffectPath})
	res := patternResources()
	tile := V4(0.5, 0.25, 0.25, 0.5)
	rect := V4(0, 0, 1, 1)
	uv := V2(0.5625, 0.375)

	ref := sh.Shade(res, Varyings{UV0: uv, Rect: rect, Tile: tile})
	if ref.Color == Transparent {
		t.Fatal("reference sample is transparent")
	}
	for _, k := range []Vec2{V2(1, 0), V2(2, -3), V2(-4, 1)} {
		shifted := uv.Add(k.MulVec(tile.ZW()))
		got := sh.Shade(res, Varyings{UV0: shifted, Rect: rect, Tile: tile})
		if got != ref {
			t.Errorf("k=%v: %v, want %v", k, got.Color, ref.Color)
		}
	}
}

func TestPatternMirrorSymmetric(t *testing.T) {
	sh := mustCompile(t, Selector{Paint: PaintPattern, Wrap: WrapMirror, Effect: EffectPath})
	res := patternResources()
	tile := V4(0.5, 0.25, 0.25, 0.5)
	rect := V4(0, 0, 1, 1)

	for _, d := range []Vec2{V2(0.0625, 0.125), V2(0.125, 0.03125), V2(0, 0.25)} {
		a := sh.Shade(res, Varyings{UV0: tile.XY().Add(d), Rect: rect, Tile: tile})
		b := sh.Shade(res, Varyings{UV0: tile.XY().Sub(d), Rect: rect, Tile: tile})
		if a != b {
			t.Errorf("d=%v: %v != %v", d, a.Color, b.Color)
		}
	}
}

func TestWrapUVAxes(t *testing.T) {
	tile := V4(0, 0, 1, 1)
	uv := V2(1.25, 1.25)
	tests := []struct {
		w    Wrap
		want Vec2
	}{
		{WrapRepeat, V2(0.25, 0.25)},
		{WrapMirrorU, V2(0.75, 0.25)},
		{WrapMirrorV, V2(0.25, 0.75)},
		{WrapMirror, V2(0.75, 0.75)},
		{WrapClamp, uv},
	}
	for _, tt := range tests {
		if got := WrapUV(uv, tile, tt.w); got != tt.want {
			t.Errorf("WrapUV(%v, %s) = %v, want %v", uv, tt.w, got, tt.want)
		}
	}
}

func TestPatternWrapUsesPreWrapDerivatives(t *testing.T) {
	var ddx, ddy Vec2
	res := &Resources{Pattern: gradSampler{&ddx, &ddy}, Constants: Constants{Opacity: 1}}
	sh := mustCompile(t, Selector{Paint: PaintPattern, Wrap: WrapRepeat, Effect: EffectPath})

	// The quad straddles a tile seam at u = 1: the wrapped coordinate jumps
	// back to 0, the original one does not.
	tile := V4(0, 0, 1, 1)
	base := Varyings{Rect: V4(0, 0, 1, 1), Tile: tile}
	q := Quad{base, base, base, base}
	q[0].UV0 = V2(0.96875, 0.5)
	q[1].UV0 = V2(1.03125, 0.5)
	q[2].UV0 = V2(0.96875, 0.5625)
	q[3].UV0 = V2(1.03125, 0.5625)

	var out [4]Output
	sh.ShadeQuad(res, &q, &out)
	if ddx != V2(0.0625, 0) || ddy != V2(0, 0.0625) {
		t.Errorf("derivatives = %v, %v; want (0.0625, 0), (0, 0.0625)", ddx, ddy)
	}
}

func TestRadialDegeneratesToLinear(t *testing.T) {
	res := &Resources{Ramps: uvColor, Constants: Constants{Radial: LinearRadial(0.5, 0.25)}}
	sh := mustCompile(t, Selector{Paint: PaintRadial, Effect: EffectPath})
	for _, uv := range []Vec2{V2(0.3, 0.9), V2(0.75, -2), V2(0, 0)} {
		out := sh.Shade(res, Varyings{UV0: uv})
		want := RGBA{R: uv.X, G: 0.5, A: 1}.Scale(0.25)
		if out.Color != want {
			t.Errorf("uv=%v: %v, want %v", uv, out.Color, want)
		}
	}
}

func TestRadialNegativeRadicandClamped(t *testing.T) {
	g := [2]Vec4{{X: 0, Y: 0, Z: 1, W: 1}, {X: 4, Y: 0, Z: 0.5}}
	u := RadialU(V2(1, 0), g) // 1 - 16 < 0
	if u != 0 {
		t.Errorf("RadialU with negative radicand = %v, want 0", u)
	}
}

func TestCustomPaint(t *testing.T) {
	var gotDDX Vec2
	custom := func(ctx *PaintContext) RGBA {
		gotDDX, _ = ctx.Derivatives(func(v *Varyings) Vec2 { return v.UV0 })
		if ctx.Resources().Opacity != 0.5 {
			t.Errorf("custom paint sees opacity %v", ctx.Resources().Opacity)
		}
		return ctx.SamplePattern(ctx.In().UV0.Mul(2))
	}
	sh := mustCompile(t, Selector{Paint: PaintPattern, Wrap: WrapCustom, Effect: EffectPath}, WithCustomPaint(custom))
	res := &Resources{Pattern: uvColor, Constants: Constants{Opacity: 0.5}}

	var q Quad
	for i := range q {
		q[i].UV0 = V2(0.25+float32(i%2)*0.125, 0.25)
	}
	var out [4]Output
	sh.ShadeQuad(res, &q, &out)

	if want := (RGBA{R: 0.5, G: 0.5, A: 1}).Scale(0.5); out[0].Color != want {
		t.Errorf("custom paint output = %v, want %v", out[0].Color, want)
	}
	if gotDDX != V2(0.125, 0) {
		t.Errorf("custom paint ddx = %v, want (0.125, 0)", gotDDX)
	}
}
