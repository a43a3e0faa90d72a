package brush

import "github.com/chewxy/math32"

// minRadialDenominator bounds 1-|focal|^2 away from zero for focal points
// on or outside the unit circle.
const minRadialDenominator = 1.0 / 1024

// RadialGradient builds the 2x4 descriptor consumed by PaintRadial for a
// gradient over the unit circle centered at the origin, seen from focal.
//
// The primary coordinate of each vertex must be its position relative to
// the focal point, in unit-circle space. The ramp is sampled at
// (u, rampV), where u is 0 at the focal point and 1 on the circle.
// Opacity is carried in the descriptor's last component.
func RadialGradient(focal Vec2, rampV, opacity float32) [2]Vec4 {
	a := 1 - focal.Dot(focal)
	if a < minRadialDenominator {
		Logger().Warn("brush: radial focal point clamped inside unit circle",
			"fx", focal.X, "fy", focal.Y)
		a = minRadialDenominator
	}
	return [2]Vec4{
		{X: focal.X / a, Y: focal.Y / a, Z: 1 / a, W: opacity},
		{X: focal.Y, Y: focal.X, Z: rampV, W: 0},
	}
}

// LinearRadial returns the degenerate descriptor for which the radial paint
// reduces to u = uv.x.
func LinearRadial(rampV, opacity float32) [2]Vec4 {
	return [2]Vec4{
		{X: 1, W: opacity},
		{Z: rampV},
	}
}

// RadialU solves the radial gradient parameter for uv under descriptor g.
// A negative radicand is clamped to zero.
func RadialU(uv Vec2, g [2]Vec4) float32 {
	dd := g[1].X*uv.X - g[1].Y*uv.Y
	disc := math32.Max(uv.X*uv.X+uv.Y*uv.Y-dd*dd, 0)
	return g[0].X*uv.X + g[0].Y*uv.Y + g[0].Z*math32.Sqrt(disc)
}
