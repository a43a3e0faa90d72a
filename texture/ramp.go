package texture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/gogpu/brush"
)

var (
	// ErrAtlasFull is returned when every row of a RampAtlas is in use.
	ErrAtlasFull = errors.New("texture: ramp atlas full")

	// ErrNoStops is returned for a ramp without color stops.
	ErrNoStops = errors.New("texture: ramp has no stops")
)

// DefaultRampWidth is the number of samples per ramp row.
const DefaultRampWidth = 256

// Stop is a gradient color stop. Colors are premultiplied and interpolated
// as such.
type Stop struct {
	Offset float32
	Color  brush.RGBA
}

// RampAtlas stores 1-D gradient ramps as the rows of one texture, bound as
// the ramps image of linear and radial paints. Identical stop lists share a
// row.
//
// Thread safety: Add is safe for concurrent use. Sampling the texture
// while rows are added requires external synchronization.
type RampAtlas struct {
	mu   sync.Mutex
	tex  *Texture
	rows map[string]int
	key  []byte
}

// NewRampAtlas creates an atlas of rows ramps, each width samples wide.
func NewRampAtlas(width, rows int) (*RampAtlas, error) {
	tex, err := New(width, rows, WithFilter(brush.FilterLinear))
	if err != nil {
		return nil, err
	}
	return &RampAtlas{tex: tex, rows: make(map[string]int)}, nil
}

// Texture returns the atlas texture.
func (a *RampAtlas) Texture() *Texture {
	return a.tex
}

// Rows returns the number of rows in use.
func (a *RampAtlas) Rows() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.rows)
}

// Add stores the ramp described by stops and returns the V coordinate of
// its row center, the value expected in UV0.y by the linear paint and in
// the descriptor's ramp coordinate by the radial paint.
func (a *RampAtlas) Add(stops []Stop) (float32, error) {
	if len(stops) == 0 {
		return 0, ErrNoStops
	}
	sorted := slices.Clone(stops)
	slices.SortStableFunc(sorted, func(x, y Stop) int {
		switch {
		case x.Offset < y.Offset:
			return -1
		case x.Offset > y.Offset:
			return 1
		}
		return 0
	})

	a.mu.Lock()
	defer a.mu.Unlock()

	key := a.key[:0]
	for _, s := range sorted {
		key = binary.LittleEndian.AppendUint32(key, math.Float32bits(s.Offset))
		for _, c := range [4]float32{s.Color.R, s.Color.G, s.Color.B, s.Color.A} {
			key = binary.LittleEndian.AppendUint32(key, math.Float32bits(c))
		}
	}
	a.key = key

	if row, ok := a.rows[string(key)]; ok {
		return a.rowV(row), nil
	}
	row := len(a.rows)
	if row >= a.tex.Height() {
		return 0, fmt.Errorf("%w: %d rows", ErrAtlasFull, a.tex.Height())
	}
	a.rows[string(key)] = row

	w := a.tex.Width()
	for x := range w {
		u := (float32(x) + 0.5) / float32(w)
		a.tex.Set(x, row, ColorAt(sorted, u))
	}
	return a.rowV(row), nil
}

func (a *RampAtlas) rowV(row int) float32 {
	return (float32(row) + 0.5) / float32(a.tex.Height())
}

// ColorAt evaluates sorted stops at offset u, padding with the end colors.
func ColorAt(sorted []Stop, u float32) brush.RGBA {
	if len(sorted) == 0 {
		return brush.Transparent
	}
	if u <= sorted[0].Offset {
		return sorted[0].Color
	}
	last := sorted[len(sorted)-1]
	if u >= last.Offset {
		return last.Color
	}
	i := 1
	for i < len(sorted) && sorted[i].Offset < u {
		i++
	}
	s0, s1 := sorted[i-1], sorted[i]
	du := s1.Offset - s0.Offset
	if du <= 0 {
		return s1.Color
	}
	return s0.Color.Lerp(s1.Color, (u-s0.Offset)/du)
}
