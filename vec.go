package brush

import "github.com/chewxy/math32"

// Vec2 is a two-component float32 vector used for texture coordinates,
// pixel offsets and screen positions.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by s.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MulVec returns the component-wise product.
func (v Vec2) MulVec(w Vec2) Vec2 {
	return Vec2{X: v.X * w.X, Y: v.Y * w.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float32 {
	return v.X*w.X + v.Y*w.Y
}

// Length returns the Euclidean length of the vector.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Lerp interpolates between v and w.
func (v Vec2) Lerp(w Vec2, t float32) Vec2 {
	return Vec2{X: v.X + (w.X-v.X)*t, Y: v.Y + (w.Y-v.Y)*t}
}

// ClampRect clamps v into the rectangle r (min in XY, max in ZW).
func (v Vec2) ClampRect(r Vec4) Vec2 {
	return Vec2{X: clampf(v.X, r.X, r.Z), Y: clampf(v.Y, r.Y, r.W)}
}

// Vec4 is a four-component float32 vector. Rectangles are stored as
// (minX, minY, maxX, maxY).
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 is a convenience function to create a Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Rect returns the rectangle spanning min to max.
func Rect(min, max Vec2) Vec4 {
	return Vec4{X: min.X, Y: min.Y, Z: max.X, W: max.Y}
}

// XY returns the first two components.
func (v Vec4) XY() Vec2 { return Vec2{X: v.X, Y: v.Y} }

// ZW returns the last two components.
func (v Vec4) ZW() Vec2 { return Vec2{X: v.Z, Y: v.W} }

// Add returns the component-wise sum.
func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z, W: v.W + w.W}
}

// Sub returns the component-wise difference.
func (v Vec4) Sub(w Vec4) Vec4 {
	return Vec4{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z, W: v.W - w.W}
}

// Mul returns the vector scaled by s.
func (v Vec4) Mul(s float32) Vec4 {
	return Vec4{X: v.X * s, Y: v.Y * s, Z: v.Z * s, W: v.W * s}
}

// Lerp interpolates between v and w.
func (v Vec4) Lerp(w Vec4, t float32) Vec4 {
	return v.Add(w.Sub(v).Mul(t))
}

func clampf(x, lo, hi float32) float32 {
	return math32.Min(math32.Max(x, lo), hi)
}

func saturate(x float32) float32 {
	return clampf(x, 0, 1)
}

func lerpf(a, b, t float32) float32 {
	return a + (b-a)*t
}
