package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/brush"
)

var (
	red   = brush.RGBA{R: 1, A: 1}
	blue  = brush.RGBA{B: 1, A: 1}
	green = brush.RGBA{G: 1, A: 1}
)

func checker(t *testing.T, opts ...Option) *Texture {
	t.Helper()
	tex, err := New(2, 2, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tex.Set(0, 0, red)
	tex.Set(1, 0, blue)
	tex.Set(0, 1, blue)
	tex.Set(1, 1, red)
	return tex
}

func TestNewInvalidDimensions(t *testing.T) {
	tests := []struct{ w, h int }{{0, 1}, {1, 0}, {-1, 4}}
	for _, tt := range tests {
		if _, err := New(tt.w, tt.h); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimensions", tt.w, tt.h, err)
		}
	}
}

func TestAtSetBounds(t *testing.T) {
	tex := checker(t)
	if got := tex.At(1, 0); got != blue {
		t.Errorf("At(1,0) = %v, want %v", got, blue)
	}
	if got := tex.At(5, 5); got != brush.Transparent {
		t.Errorf("At(5,5) = %v, want transparent", got)
	}
	tex.Set(-1, 0, green) // ignored
}

func TestSampleNearest(t *testing.T) {
	tex := checker(t, WithFilter(brush.FilterNearest))
	tests := []struct {
		uv   brush.Vec2
		want brush.RGBA
	}{
		{brush.V2(0.1, 0.1), red},
		{brush.V2(0.9, 0.1), blue},
		{brush.V2(0.1, 0.9), blue},
		{brush.V2(0.9, 0.9), red},
		{brush.V2(-3, -3), red}, // clamp
	}
	for _, tt := range tests {
		if got := tex.Sample(tt.uv); got != tt.want {
			t.Errorf("Sample(%v) = %v, want %v", tt.uv, got, tt.want)
		}
	}
}

func TestSampleLinearTexelCenters(t *testing.T) {
	tex := checker(t)
	if got := tex.Sample(brush.V2(0.25, 0.25)); !got.ApproxEqual(red, 1e-6) {
		t.Errorf("texel center = %v, want %v", got, red)
	}
	mid := tex.Sample(brush.V2(0.5, 0.25))
	want := brush.RGBA{R: 0.5, B: 0.5, A: 1}
	if !mid.ApproxEqual(want, 1e-6) {
		t.Errorf("midpoint = %v, want %v", mid, want)
	}
}

func TestAddressModes(t *testing.T) {
	tests := []struct {
		name string
		mode brush.AddressMode
		i, n int
		want int
	}{
		{"clamp low", brush.AddressClamp, -2, 4, 0},
		{"clamp high", brush.AddressClamp, 9, 4, 3},
		{"repeat", brush.AddressRepeat, 5, 4, 1},
		{"repeat negative", brush.AddressRepeat, -1, 4, 3},
		{"mirror first period", brush.AddressMirror, 4, 4, 3},
		{"mirror back", brush.AddressMirror, 7, 4, 0},
		{"mirror negative", brush.AddressMirror, -1, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := address(tt.i, tt.n, tt.mode); got != tt.want {
				t.Errorf("address(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
			}
		})
	}
}

func TestRepeatSamplingIsPeriodic(t *testing.T) {
	tex := checker(t, WithAddress(brush.AddressRepeat, brush.AddressRepeat))
	for _, uv := range []brush.Vec2{brush.V2(0.3, 0.7), brush.V2(0.5, 0.5), brush.V2(0.05, 0.95)} {
		a := tex.Sample(uv)
		b := tex.Sample(uv.Add(brush.V2(2, -1)))
		if !a.ApproxEqual(b, 1e-5) {
			t.Errorf("Sample(%v) = %v, shifted = %v", uv, a, b)
		}
	}
}

func TestGenerateMipmaps(t *testing.T) {
	tex, err := New(8, 4)
	if err != nil {
		t.Fatal(err)
	}
	tex.Fill(red)
	tex.Set(0, 0, blue)
	tex.GenerateMipmaps()

	if got := tex.Levels(); got != 4 {
		t.Fatalf("Levels() = %d, want 4 (8x4, 4x2, 2x1, 1x1)", got)
	}
	top := tex.levels[len(tex.levels)-1]
	if top.width != 1 || top.height != 1 {
		t.Errorf("last level = %dx%d, want 1x1", top.width, top.height)
	}
	// One blue texel out of 32.
	want := red.Scale(31.0 / 32).Add(blue.Scale(1.0 / 32))
	if !top.pix[0].ApproxEqual(want, 1e-5) {
		t.Errorf("1x1 level = %v, want %v", top.pix[0], want)
	}
}

func TestSampleGradSelectsLevel(t *testing.T) {
	tex, err := New(16, 16, WithFilter(brush.FilterNearest))
	if err != nil {
		t.Fatal(err)
	}
	for y := range 16 {
		for x := range 16 {
			if (x+y)%2 == 0 {
				tex.Set(x, y, brush.Gray(1))
			} else {
				tex.Set(x, y, brush.RGBA{A: 1})
			}
		}
	}
	tex.GenerateMipmaps()

	uv := brush.V2(0.5, 0.5)
	if got := tex.LOD(brush.V2(1.0/16, 0), brush.V2(0, 1.0/16)); got != 0 {
		t.Errorf("LOD at one texel per pixel = %v, want 0", got)
	}
	if got := tex.LOD(brush.V2(4.0/16, 0), brush.V2(0, 0)); got != 2 {
		t.Errorf("LOD at four texels per pixel = %v, want 2", got)
	}

	// Far enough away the checkerboard averages to gray.
	far := tex.SampleGrad(uv, brush.V2(1, 0), brush.V2(0, 1))
	if !far.ApproxEqual(brush.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 1e-5) {
		t.Errorf("SampleGrad minified = %v, want mid gray", far)
	}
}

func TestSampleGradWithoutMipsFallsBack(t *testing.T) {
	tex := checker(t)
	uv := brush.V2(0.25, 0.25)
	if got, want := tex.SampleGrad(uv, brush.V2(1, 0), brush.V2(0, 1)), tex.Sample(uv); got != want {
		t.Errorf("SampleGrad = %v, want Sample = %v", got, want)
	}
}

func TestFromImageRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	src.SetNRGBA(10, 10, color.NRGBA{R: 255, A: 128})
	src.SetNRGBA(11, 10, color.NRGBA{G: 255, A: 255})

	tex, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if tex.Width() != 2 || tex.Height() != 1 {
		t.Fatalf("size = %dx%d, want 2x1", tex.Width(), tex.Height())
	}
	// Premultiplied on conversion.
	if got := tex.At(0, 0); !got.ApproxEqual(brush.RGBA{R: 128.0 / 255, A: 128.0 / 255}, 1.0/255) {
		t.Errorf("At(0,0) = %v, want premultiplied half red", got)
	}

	var buf bytes.Buffer
	if err := tex.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := back.At(1, 0); !got.ApproxEqual(green, 1.0/255) {
		t.Errorf("decoded At(1,0) = %v, want %v", got, green)
	}
}

func TestFromImageNil(t *testing.T) {
	if _, err := FromImage(nil); !errors.Is(err, ErrNilImage) {
		t.Errorf("FromImage(nil) error = %v, want ErrNilImage", err)
	}
}

func TestRampAtlas(t *testing.T) {
	atlas, err := NewRampAtlas(64, 2)
	if err != nil {
		t.Fatal(err)
	}

	stops := []Stop{{Offset: 1, Color: blue}, {Offset: 0, Color: red}}
	v, err := atlas.Add(stops)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if v != 0.25 {
		t.Errorf("first row V = %v, want 0.25", v)
	}

	tex := atlas.Texture()
	if got := tex.At(0, 0); !got.ApproxEqual(red, 0.02) {
		t.Errorf("ramp start = %v, want red", got)
	}
	if got := tex.At(63, 0); !got.ApproxEqual(blue, 0.02) {
		t.Errorf("ramp end = %v, want blue", got)
	}
	mid := tex.Sample(brush.V2(0.5, v))
	if !mid.ApproxEqual(brush.RGBA{R: 0.5, B: 0.5, A: 1}, 0.02) {
		t.Errorf("ramp middle = %v, want half red half blue", mid)
	}

	again, err := atlas.Add([]Stop{{Offset: 0, Color: red}, {Offset: 1, Color: blue}})
	if err != nil || again != v {
		t.Errorf("Add(same stops) = %v, %v; want %v, nil", again, err, v)
	}

	if _, err := atlas.Add([]Stop{{Color: green}}); err != nil {
		t.Fatalf("Add second ramp: %v", err)
	}
	if _, err := atlas.Add([]Stop{{Color: blue}}); !errors.Is(err, ErrAtlasFull) {
		t.Errorf("Add past capacity error = %v, want ErrAtlasFull", err)
	}
	if _, err := atlas.Add(nil); !errors.Is(err, ErrNoStops) {
		t.Errorf("Add(nil) error = %v, want ErrNoStops", err)
	}
	if got := atlas.Rows(); got != 2 {
		t.Errorf("Rows() = %d, want 2", got)
	}
}

func TestColorAt(t *testing.T) {
	stops := []Stop{{Offset: 0.2, Color: red}, {Offset: 0.2, Color: green}, {Offset: 0.8, Color: blue}}
	tests := []struct {
		u    float32
		want brush.RGBA
	}{
		{0, red},
		{0.5, green.Lerp(blue, 0.5)},
		{1, blue},
	}
	for _, tt := range tests {
		if got := ColorAt(stops, tt.u); !got.ApproxEqual(tt.want, 1e-5) {
			t.Errorf("ColorAt(%v) = %v, want %v", tt.u, got, tt.want)
		}
	}
}

func BenchmarkSampleLinear(b *testing.B) {
	tex := MustNew(256, 256)
	uv := brush.V2(0.37, 0.61)
	b.ReportAllocs()
	for b.Loop() {
		_ = tex.Sample(uv)
	}
}
