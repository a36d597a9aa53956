// Package config loads tessellation definitions from YAML or JSON files.
//
// A file holds a list of definitions under "tessellations". Each names a
// shape by its rows ('#' occupied), the neighbor placements around the
// main copy, and optional render settings:
//
//	tessellations:
//	  - name: square
//	    shape: ["##", "##"]
//	    placements:
//	      - {symmetry: ID, at: [4, 2]}
//	      - {symmetry: ID, at: [2, 4]}
//	    render: {width: 64, height: 64, scale: 4}
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/shape"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDefinition is returned for definitions that cannot be used.
var ErrInvalidDefinition = errors.New("config: invalid definition")

// Render defaults.
const (
	DefaultWidth      = 64
	DefaultHeight     = 64
	DefaultScale      = 4
	DefaultDepth      = 6
	DefaultBackground = "#ffffff"
)

// Render limits. An image holds at most MaxPixels pixels.
const (
	MaxCells  = 1024
	MaxScale  = 64
	MaxDepth  = 64
	MaxPixels = 4096 * 4096
)

// Placement is one neighbor: its symmetry and absolute center in the
// working grid.
type Placement struct {
	Symmetry symmetry.Element `yaml:"symmetry" json:"symmetry"`
	At       [2]int           `yaml:"at" json:"at"`
}

// Point returns At as a point.
func (p Placement) Point() geometry.Point { return geometry.Pt(p.At[0], p.At[1]) }

// Render holds image settings. Sizes are in cells.
type Render struct {
	Width      int      `yaml:"width" json:"width" mapstructure:"width"`
	Height     int      `yaml:"height" json:"height" mapstructure:"height"`
	Scale      int      `yaml:"scale" json:"scale" mapstructure:"scale"`
	Depth      int      `yaml:"depth" json:"depth" mapstructure:"depth"`
	Background string   `yaml:"background" json:"background" mapstructure:"background"`
	Palette    []string `yaml:"palette" json:"palette" mapstructure:"palette"`
}

// WithDefaults fills zero fields with the package defaults.
func (r Render) WithDefaults() Render {
	if r.Width == 0 {
		r.Width = DefaultWidth
	}
	if r.Height == 0 {
		r.Height = DefaultHeight
	}
	if r.Scale == 0 {
		r.Scale = DefaultScale
	}
	if r.Depth == 0 {
		r.Depth = DefaultDepth
	}
	if r.Background == "" {
		r.Background = DefaultBackground
	}
	return r
}

// Validate rejects negative sizes and settings above the render limits.
func (r Render) Validate() error {
	if r.Width < 0 || r.Height < 0 || r.Scale < 0 || r.Depth < 0 {
		return fmt.Errorf("%w: negative render setting in %+v", ErrInvalidDefinition, r)
	}
	switch {
	case r.Width > MaxCells || r.Height > MaxCells:
		return fmt.Errorf("%w: image of %dx%d cells exceeds %d per side", ErrInvalidDefinition, r.Width, r.Height, MaxCells)
	case r.Scale > MaxScale:
		return fmt.Errorf("%w: scale %d exceeds %d", ErrInvalidDefinition, r.Scale, MaxScale)
	case r.Depth > MaxDepth:
		return fmt.Errorf("%w: depth %d exceeds %d", ErrInvalidDefinition, r.Depth, MaxDepth)
	case r.Width*r.Scale*r.Height*r.Scale > MaxPixels:
		return fmt.Errorf("%w: %dx%d cells at scale %d exceeds %d pixels",
			ErrInvalidDefinition, r.Width, r.Height, r.Scale, MaxPixels)
	}
	return nil
}

// Definition describes one tessellation.
type Definition struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Shape       []string    `yaml:"shape" json:"shape"`
	Placements  []Placement `yaml:"placements" json:"placements"`
	Render      Render      `yaml:"render" json:"render"`
}

// ParseShape builds the definition's shape.
func (d Definition) ParseShape() (*shape.Shape, error) {
	s, err := shape.Parse(d.Shape...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, d.Name, err)
	}
	return s, nil
}

// Validate checks the name, shape and render settings.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	}
	if _, err := d.ParseShape(); err != nil {
		return err
	}
	return d.Render.Validate()
}

// File is the on-disk layout.
type File struct {
	Tessellations []Definition `yaml:"tessellations" json:"tessellations"`
}

// Parse decodes data as JSON when ext is ".json" and as YAML otherwise,
// validates every definition and applies render defaults.
func Parse(data []byte, ext string) ([]Definition, error) {
	var f File
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse json definitions: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse yaml definitions: %w", err)
		}
	}

	seen := make(map[string]bool, len(f.Tessellations))
	for i := range f.Tessellations {
		d := &f.Tessellations[i]
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidDefinition, d.Name)
		}
		seen[d.Name] = true
		d.Render = d.Render.WithDefaults()
	}
	return f.Tessellations, nil
}

// Load reads one definition file.
func Load(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	defs, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// LoadDir reads every .yaml, .yml and .json file of dir in name order.
// Names must be unique across files.
func LoadDir(dir string) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
	}
	slices.Sort(names)

	var out []Definition
	seen := map[string]string{}
	for _, n := range names {
		defs, err := Load(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		for _, d := range defs {
			if prev, dup := seen[d.Name]; dup {
				return nil, fmt.Errorf("%w: %q defined in %s and %s", ErrInvalidDefinition, d.Name, prev, n)
			}
			seen[d.Name] = n
			out = append(out, d)
		}
	}
	return out, nil
}

// Find returns the definition called name.
func Find(defs []Definition, name string) (Definition, bool) {
	i := slices.IndexFunc(defs, func(d Definition) bool { return d.Name == name })
	if i < 0 {
		return Definition{}, false
	}
	return defs[i], true
}
