package effect

import (
	"errors"
	"fmt"

	"github.com/gogpu/brush"
)

var (
	// ErrNoFunc is returned when an effect is compiled without a function.
	ErrNoFunc = errors.New("effect: nil effect function")

	// ErrNoName is returned when an effect is compiled without a name.
	ErrNoName = errors.New("effect: empty effect name")
)

// Func computes the color of one pixel of a custom effect. The returned
// color is premultiplied.
type Func func(ctx *Context) brush.RGBA

// Shader is a compiled custom effect. It is immutable and safe for
// concurrent use.
type Shader struct {
	name string
	fn   Func
}

// Compile binds fn into a shader named name.
func Compile(name string, fn Func) (*Shader, error) {
	if name == "" {
		return nil, ErrNoName
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoFunc, name)
	}
	brush.Logger().Debug("effect: compiled custom effect", "name", name)
	return &Shader{name: name, fn: fn}, nil
}

// Name returns the effect name.
func (s *Shader) Name() string {
	return s.name
}

// Shade evaluates the effect for one pixel and composites the result
// against the primitive's alpha.
func (s *Shader) Shade(input brush.Sampler, in Input) brush.RGBA {
	ctx := Context{in: in, input: input}
	return s.fn(&ctx).Scale(in.Color.A)
}

// Apply runs the effect over every pixel of a dst image that mirrors the
// logical image rect of input, sized width x height scene pixels. It is a
// convenience for full-image effects on the software path.
func (s *Shader) Apply(input brush.Sampler, rect brush.Vec4, width, height int, set func(x, y int, c brush.RGBA)) {
	if width <= 0 || height <= 0 {
		return
	}
	px := brush.V2((rect.Z-rect.X)/float32(width), (rect.W-rect.Y)/float32(height))
	in := Input{
		Color: brush.RGBA{A: 1},
		Rect:  rect,
	}
	for y := range height {
		for x := range width {
			pos := brush.V2(float32(x)+0.5, float32(y)+0.5)
			in.UV = brush.V2(rect.X+pos.X*px.X, rect.Y+pos.Y*px.Y)
			in.ImagePos = brush.V4(pos.X, pos.Y, px.X, px.Y)
			set(x, y, s.Shade(input, in))
		}
	}
}
