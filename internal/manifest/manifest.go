// Package manifest reads the TOML file naming the permutations and custom
// effects a shader build emits.
//
//	out = "shaders"
//	spirv = true
//
//	[sdf]
//	scale = 7.96875
//
//	[[brush]]
//	paint = "linear"
//	effect = "path_aa"
//
//	[[brush]]
//	name = "stripes"
//	paint = "pattern"
//	wrap = "custom"
//	custom = "stripes.wgsl"
//
//	[[effect]]
//	name = "desaturate"
//	source = "desaturate.wgsl"
//
// A custom pattern brush without an effect expands into every effect a
// custom brush is built with. Source paths are relative to the manifest.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/effect"
	"github.com/gogpu/brush/wgsl"
)

var (
	// ErrUnknownKey is returned when the manifest has keys this package
	// does not understand.
	ErrUnknownKey = errors.New("manifest: unknown key")

	// ErrNoSource is returned when a custom brush or effect names no
	// source file, or the file cannot be read.
	ErrNoSource = errors.New("manifest: missing source")

	// ErrDuplicate is returned when two entries produce the same name.
	ErrDuplicate = errors.New("manifest: duplicate name")
)

// Manifest is a parsed and resolved manifest.
type Manifest struct {
	// Out is the output directory, relative to the working directory.
	Out string
	// SPIRV requests compiled modules next to the WGSL sources.
	SPIRV bool
	// SDF is the distance-field calibration, DefaultSDF unless overridden.
	SDF brush.SDFParams

	Brushes []Brush
	Effects []effect.Definition
}

// Brush is one brush permutation to emit.
type Brush struct {
	// Name is the output file stem.
	Name     string
	Selector brush.Selector
	// Custom holds the get_custom_pattern source of custom pattern
	// brushes.
	Custom string
}

// WGSLOptions returns the generator options shared by every brush.
func (m *Manifest) WGSLOptions() []wgsl.Option {
	return []wgsl.Option{wgsl.WithSDFParams(m.SDF)}
}

type file struct {
	Out    string        `toml:"out"`
	SPIRV  bool          `toml:"spirv"`
	SDF    sdfTable      `toml:"sdf"`
	Brush  []brushEntry  `toml:"brush"`
	Effect []effectEntry `toml:"effect"`
}

type sdfTable struct {
	Scale    float32 `toml:"scale"`
	Bias     float32 `toml:"bias"`
	AAFactor float32 `toml:"aa_factor"`
	BaseMin  float32 `toml:"base_min"`
	BaseMax  float32 `toml:"base_max"`
	BaseDev  float32 `toml:"base_dev"`
}

type brushEntry struct {
	Name   string `toml:"name"`
	Paint  string `toml:"paint"`
	Wrap   string `toml:"wrap"`
	Effect string `toml:"effect"`
	Custom string `toml:"custom"`
}

type effectEntry struct {
	Name   string `toml:"name"`
	Source string `toml:"source"`
}

// Load reads the manifest at path. Source files are resolved relative to
// its directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	m, err := Parse(data, os.DirFS(filepath.Dir(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest. Source files are read from fsys, which may be
// nil when the manifest references none.
func Parse(data []byte, fsys fs.FS) (*Manifest, error) {
	f := file{SDF: sdfTable(brush.DefaultSDF)}
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	m := &Manifest{
		Out:   f.Out,
		SPIRV: f.SPIRV,
		SDF:   brush.SDFParams(f.SDF),
	}
	if m.Out == "" {
		m.Out = "."
	}
	if err := m.SDF.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: [sdf]: %w", err)
	}

	seen := make(map[string]bool)
	add := func(name string) error {
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDuplicate, name)
		}
		seen[name] = true
		return nil
	}

	for i, e := range f.Brush {
		brushes, err := resolveBrush(e, fsys)
		if err != nil {
			return nil, fmt.Errorf("manifest: brush %d: %w", i, err)
		}
		for _, b := range brushes {
			if err := add(b.Name); err != nil {
				return nil, err
			}
		}
		m.Brushes = append(m.Brushes, brushes...)
	}

	for i, e := range f.Effect {
		if e.Name == "" {
			return nil, fmt.Errorf("manifest: effect %d: %w", i, effect.ErrNoName)
		}
		src, err := readSource(fsys, e.Source)
		if err != nil {
			return nil, fmt.Errorf("manifest: effect %s: %w", e.Name, err)
		}
		if err := add("effect_" + e.Name); err != nil {
			return nil, err
		}
		m.Effects = append(m.Effects, effect.Definition{Name: e.Name, WGSL: src})
	}

	brush.Logger().Debug("manifest: parsed",
		"brushes", len(m.Brushes), "effects", len(m.Effects), "out", m.Out)
	return m, nil
}

func resolveBrush(e brushEntry, fsys fs.FS) ([]Brush, error) {
	var paint brush.Paint
	if e.Paint != "" {
		p, err := brush.ParsePaint(e.Paint)
		if err != nil {
			return nil, err
		}
		paint = p
	}
	wrap, err := brush.ParseWrap(e.Wrap)
	if err != nil {
		return nil, err
	}

	var custom string
	if paint == brush.PaintPattern && wrap == brush.WrapCustom {
		if custom, err = readSource(fsys, e.Custom); err != nil {
			return nil, err
		}
	} else if e.Custom != "" {
		return nil, fmt.Errorf("custom source %q on a non-custom brush", e.Custom)
	}

	effects := wgsl.CustomEffects
	if e.Effect != "" {
		fx, err := brush.ParseEffect(e.Effect)
		if err != nil {
			return nil, err
		}
		effects = []brush.Effect{fx}
	} else if custom == "" {
		return nil, brush.ErrNoEffect
	}

	out := make([]Brush, 0, len(effects))
	for _, fx := range effects {
		sel := brush.Selector{Paint: paint, Wrap: wrap, Effect: fx}.Normalize()
		if err := sel.Validate(); err != nil {
			return nil, err
		}
		name := sel.Name()
		if e.Name != "" {
			name = e.Name + "_" + fx.String()
		}
		out = append(out, Brush{Name: name, Selector: sel, Custom: custom})
	}
	return out, nil
}

func readSource(fsys fs.FS, name string) (string, error) {
	if name == "" {
		return "", ErrNoSource
	}
	if fsys == nil {
		return "", fmt.Errorf("%w: %s: no file system", ErrNoSource, name)
	}
	data, err := fs.ReadFile(fsys, filepath.ToSlash(name))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoSource, err)
	}
	return string(data), nil
}
