package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/texture"
)

const testCell = 32

func center(x, y int) (int, int) {
	return gap + x*(testCell+gap) + testCell/2, gap + y*(testCell+gap) + testCell/2
}

func TestRender(t *testing.T) {
	sheet, err := render(context.Background(), testCell, 2)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	wantW := len(columns)*(testCell+gap) + gap
	wantH := (len(rows)+1)*(testCell+gap) + gap
	if sheet.Width() != wantW || sheet.Height() != wantH {
		t.Fatalf("size = %dx%d, want %dx%d", sheet.Width(), sheet.Height(), wantW, wantH)
	}

	last := len(rows)
	tests := []struct {
		name string
		x, y int
		want brush.RGBA
	}{
		{"gap", 0, 0, background},
		{"solid path", 0, 0, brush.Premul(0.25, 0.6, 0.95, 1)},
		{"rgba", 0, last, brush.Premul(0.9, 0.5, 0.1, 1)},
		{"mask", 1, last, brush.Gray(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := 0, 0
			if tt.name != "gap" {
				x, y = center(tt.x, tt.y)
			}
			if got := sheet.At(x, y); !got.ApproxEqual(tt.want, 1e-4) {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, tt.want)
			}
		})
	}
}

func TestRenderClampBorder(t *testing.T) {
	sheet, err := render(context.Background(), testCell, 1)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// The clamp column maps the cell border outside the pattern rect.
	x0 := gap + 3*(testCell+gap)
	if got := sheet.At(x0+1, gap+1); !got.ApproxEqual(background, 1e-4) {
		t.Errorf("clamp border = %v, want background", got)
	}
	cx, cy := center(3, 0)
	if got := sheet.At(cx, cy); got.ApproxEqual(background, 1e-2) {
		t.Errorf("clamp center = %v, want pattern", got)
	}
}

func TestRenderSavesPNG(t *testing.T) {
	sheet, err := render(context.Background(), testCell, 0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	path := filepath.Join(t.TempDir(), "demo.png")
	if err := sheet.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	got, err := texture.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Width() != sheet.Width() || got.Height() != sheet.Height() {
		t.Errorf("loaded %dx%d, want %dx%d", got.Width(), got.Height(), sheet.Width(), sheet.Height())
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := render(context.Background(), 8, 1); err == nil {
		t.Error("render with an 8px cell succeeded")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := render(ctx, testCell, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled render error = %v, want context.Canceled", err)
	}
}
