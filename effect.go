package brush

// effectFunc applies the effect stage to the resolved paint of one pixel.
type effectFunc func(px *pixel, paint RGBA, opacity float32) Output

// white is the Mask output.
var white = RGBA{R: 1, G: 1, B: 1, A: 1}

// selectEffect returns the effect stage of a normalized selector.
func selectEffect(e Effect, sdf SDFParams) effectFunc {
	switch e {
	case EffectRGBA:
		return func(px *pixel, _ RGBA, _ float32) Output {
			return Output{Color: px.res.RGBA}
		}

	case EffectMask:
		return func(*pixel, RGBA, float32) Output {
			return Output{Color: white}
		}

	case EffectClear:
		return func(*pixel, RGBA, float32) Output {
			return Output{}
		}

	case EffectPath:
		return func(_ *pixel, paint RGBA, opacity float32) Output {
			return Output{Color: paint.Scale(opacity)}
		}

	case EffectPathAA:
		return func(px *pixel, paint RGBA, opacity float32) Output {
			return Output{Color: paint.Scale(opacity * px.v.Coverage)}
		}

	case EffectOpacity:
		return func(px *pixel, paint RGBA, opacity float32) Output {
			return Output{Color: px.res.Image.Sample(px.v.UV1).Scale(opacity * paint.A)}
		}

	case EffectShadow:
		return func(px *pixel, paint RGBA, _ float32) Output {
			return Output{Color: shadow(px, paint)}
		}

	case EffectBlur:
		return func(px *pixel, paint RGBA, _ float32) Output {
			src := px.res.Image.Sample(px.v.UV1)
			blurred := px.res.Shadow.Sample(px.v.UV1)
			return Output{Color: src.Lerp(blurred, px.res.Blend).Scale(paint.A)}
		}

	case EffectSDF:
		return func(px *pixel, paint RGBA, opacity float32) Output {
			d := sdf.Distance(px.res.Glyphs.Sample(px.v.UV1).R)
			alpha := sdf.Coverage(d, px.quad.ddxST1.Length())
			return Output{Color: paint.Scale(alpha * opacity)}
		}

	case EffectSDFLCD:
		return func(px *pixel, paint RGBA, opacity float32) Output {
			return sdfLCD(px, sdf, paint, opacity)
		}

	case EffectDownsample:
		return func(px *pixel, _ RGBA, _ float32) Output {
			p := px.res.Pattern
			sum := p.Sample(px.v.UV0).
				Add(p.Sample(px.v.UV1)).
				Add(p.Sample(px.v.UV2)).
				Add(p.Sample(px.v.UV3))
			return Output{Color: sum.Scale(0.25)}
		}

	case EffectUpsample:
		return func(px *pixel, paint RGBA, _ float32) Output {
			full := px.res.Image.Sample(px.v.UV1)
			low := px.res.Pattern.Sample(px.v.UV0)
			return Output{Color: full.Lerp(low, paint.A)}
		}
	}

	return func(*pixel, RGBA, float32) Output {
		return Output{}
	}
}

// shadow composites a shadow halo under the source image. The halo alpha
// blends the source alpha and the shadow image alpha, both read at the
// offset coordinate clamped to the primitive rect.
func shadow(px *pixel, paint RGBA) RGBA {
	res := px.res
	rect := px.v.Rect
	uv := px.v.UV1.Sub(res.ShadowOffset).ClampRect(rect)
	alpha := lerpf(res.Image.Sample(uv).A, res.Shadow.Sample(uv).A, res.Blend)
	img := res.Image.Sample(px.v.UV1.ClampRect(rect))
	halo := res.ShadowColor.Scale(alpha)
	return img.Add(halo.Scale(1 - img.A)).Scale(paint.A)
}

// sdfLCD resolves three horizontally offset distance samples into per
// subpixel coverages. The color target uses the green coverage as its
// alpha; the alpha target carries all three for component-alpha blending.
func sdfLCD(px *pixel, sdf SDFParams, paint RGBA, opacity float32) Output {
	grad := px.quad.ddxST1
	offset := grad.MulVec(Vec2{X: px.v.ST1.Z, Y: px.v.ST1.W})
	g := px.res.Glyphs

	dr := sdf.Distance(g.Sample(px.v.UV1.Sub(offset)).R)
	dg := sdf.Distance(g.Sample(px.v.UV1).R)
	db := sdf.Distance(g.Sample(px.v.UV1.Add(offset)).R)

	gradLen := grad.Length()
	ar := sdf.Coverage(dr, gradLen)
	ag := sdf.Coverage(dg, gradLen)
	ab := sdf.Coverage(db, gradLen)

	pa := opacity * paint.A
	return Output{
		Color: RGBA{R: opacity * paint.R * ar, G: opacity * paint.G * ag, B: opacity * paint.B * ab, A: ag},
		Alpha: RGBA{R: pa * ar, G: pa * ag, B: pa * ab, A: ag},
	}
}
