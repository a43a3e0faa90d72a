package brush

import (
	"errors"
	"sync"
	"testing"
)

func TestCompileErrors(t *testing.T) {
	if _, err := Compile(Selector{Paint: PaintSolid}); !errors.Is(err, ErrNoEffect) {
		t.Errorf("no effect: %v", err)
	}
	if _, err := Compile(Selector{Effect: EffectPathAA}); !errors.Is(err, ErrNoPaint) {
		t.Errorf("no paint: %v", err)
	}
	if _, err := Compile(Selector{Paint: PaintPattern, Wrap: WrapCustom, Effect: EffectSDF}); !errors.Is(err, ErrNoCustomPaint) {
		t.Errorf("custom without function: %v", err)
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic on an invalid selector")
		}
	}()
	MustCompile(Selector{})
}

func TestCompileAllSelectors(t *testing.T) {
	custom := WithCustomPaint(func(*PaintContext) RGBA { return RGBA{A: 1} })
	for _, sel := range Selectors() {
		sh := mustCompile(t, sel, custom)
		if sh.Name() != sel.Name() {
			t.Errorf("Name() = %q, want %q", sh.Name(), sel.Name())
		}
		if sh.Selector() != sel {
			t.Errorf("Selector() = %v, want %v", sh.Selector(), sel)
		}
		if sh.Layout().Attribs != sh.Attribs() {
			t.Errorf("%s: layout attribs mismatch", sel.Name())
		}
		if sh.SDF() != DefaultSDF {
			t.Errorf("%s: SDF() = %+v", sel.Name(), sh.SDF())
		}
	}
}

func TestCheckResources(t *testing.T) {
	sh := mustCompile(t, Selector{Paint: PaintLinear, Effect: EffectBlur})
	if err := sh.CheckResources(nil); !errors.Is(err, ErrMissingImage) {
		t.Errorf("nil resources: %v", err)
	}
	res := &Resources{Ramps: uvColor, Image: uvColor}
	if err := sh.CheckResources(res); !errors.Is(err, ErrMissingImage) {
		t.Errorf("missing shadow: %v", err)
	}
	res.Shadow = uvColor
	if err := sh.CheckResources(res); err != nil {
		t.Errorf("complete resources: %v", err)
	}
}

func TestShadeQuadDerivatives(t *testing.T) {
	// The same pixel shaded alone (zero derivatives) and inside a quad with
	// a real gradient must differ for SDF: the gradient sets the AA width.
	sh := mustCompile(t, Selector{Paint: PaintSolid, Effect: EffectSDF})
	res := &Resources{Glyphs: glyphAt(0.1)}

	q := sdfQuad(2, 0)
	var out [4]Output
	sh.ShadeQuad(res, &q, &out)
	alone := sh.Shade(res, q[0])

	if alone.Color.A != 1 {
		t.Errorf("zero-derivative coverage = %v, want hard step to 1", alone.Color.A)
	}
	if out[0].Color.A <= 0.5 || out[0].Color.A >= 1 {
		t.Errorf("quad coverage = %v, want smooth value in (0.5, 1)", out[0].Color.A)
	}
	for i := 1; i < 4; i++ {
		if out[i] != out[0] {
			t.Errorf("pixel %d = %v, want %v (uniform inputs)", i, out[i], out[0])
		}
	}
}

func TestShaderConcurrentUse(t *testing.T) {
	sh := mustCompile(t, Selector{Paint: PaintPattern, Wrap: WrapRepeat, Effect: EffectPathAA})
	res := patternResources()
	v := Varyings{UV0: V2(0.3, 0.7), Rect: V4(0, 0, 1, 1), Tile: V4(0, 0, 0.5, 0.5), Coverage: 1}
	want := sh.Shade(res, v)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if got := sh.Shade(res, v); got != want {
					t.Errorf("concurrent Shade = %v, want %v", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkShadeQuad(b *testing.B) {
	benchmarks := []Selector{
		{Paint: PaintSolid, Effect: EffectPathAA},
		{Paint: PaintRadial, Effect: EffectPath},
		{Paint: PaintPattern, Wrap: WrapMirror, Effect: EffectPath},
		{Paint: PaintSolid, Effect: EffectSDFLCD},
	}
	res := &Resources{
		Pattern: uvColor, Ramps: uvColor, Glyphs: glyphAt(0),
		Constants: Constants{Opacity: 1, Radial: RadialGradient(V2(0.2, 0), 0.5, 1)},
	}
	for _, sel := range benchmarks {
		b.Run(sel.Name(), func(b *testing.B) {
			sh := mustCompile(b, sel)
			q := sdfQuad(0.5, 1.0/3)
			for i := range q {
				q[i].UV0 = V2(0.1*float32(i), 0.2)
				q[i].Rect = V4(0, 0, 1, 1)
				q[i].Tile = V4(0, 0, 0.25, 0.25)
				q[i].Coverage = 1
			}
			var out [4]Output
			b.ReportAllocs()
			for b.Loop() {
				sh.ShadeQuad(res, &q, &out)
			}
		})
	}
}
