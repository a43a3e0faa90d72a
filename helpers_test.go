package brush

// solidSampler returns the same color everywhere.
type solidSampler RGBA

func (s solidSampler) Sample(Vec2) RGBA              { return RGBA(s) }
func (s solidSampler) SampleGrad(_, _, _ Vec2) RGBA { return RGBA(s) }

// funcSampler evaluates a function of the coordinate.
type funcSampler func(uv Vec2) RGBA

func (f funcSampler) Sample(uv Vec2) RGBA              { return f(uv) }
func (f funcSampler) SampleGrad(uv, _, _ Vec2) RGBA { return f(uv) }

// uvColor exposes the sampled coordinate as red and green.
var uvColor = funcSampler(func(uv Vec2) RGBA { return RGBA{R: uv.X, G: uv.Y, A: 1} })

// uvAlpha also varies the alpha with the coordinate, so effects that only
// read the paint alpha still observe the paint coordinate.
var uvAlpha = funcSampler(func(uv Vec2) RGBA {
	return RGBA{R: uv.X, G: uv.Y, A: 0.5 + 0.25*uv.X + 0.125*uv.Y}
})

// gradSampler records the derivatives passed to SampleGrad.
type gradSampler struct {
	ddx, ddy *Vec2
}

func (g gradSampler) Sample(uv Vec2) RGBA { return uvColor(uv) }

func (g gradSampler) SampleGrad(uv, ddx, ddy Vec2) RGBA {
	*g.ddx, *g.ddy = ddx, ddy
	return uvColor(uv)
}

func mustCompile(t interface {
	Helper()
	Fatalf(string, ...any)
}, sel Selector, opts ...Option) *Shader {
	t.Helper()
	s, err := Compile(sel, opts...)
	if err != nil {
		t.Fatalf("Compile(%v): %v", sel, err)
	}
	return s
}
