package wgsl

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/brush"
)

// writer accumulates generated source with a fixed indentation step.
type writer struct {
	buf    bytes.Buffer
	indent int
}

func (w *writer) line(format string, args ...any) {
	if format == "" {
		w.buf.WriteByte('\n')
		return
	}
	for range w.indent {
		w.buf.WriteString("    ")
	}
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
}

func (w *writer) open(format string, args ...any) {
	w.line(format+" {", args...)
	w.indent++
}

func (w *writer) close(suffix string) {
	w.indent--
	w.line("}%s", suffix)
}

func (w *writer) raw(src string) {
	w.buf.WriteString(src)
	if !strings.HasSuffix(src, "\n") {
		w.buf.WriteByte('\n')
	}
}

func (w *writer) String() string {
	return w.buf.String()
}

// f32 formats v as a WGSL float literal.
func f32(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// typeOf returns the WGSL type of an attribute.
func typeOf(a brush.Attrib) string {
	switch a.Components() {
	case 1:
		return "f32"
	case 2:
		return "vec2<f32>"
	default:
		return "vec4<f32>"
	}
}

// interpolation returns the interpolation attribute of a, if any.
func interpolation(a brush.Attrib) string {
	if a.Flat() {
		return " @interpolate(flat)"
	}
	return ""
}
