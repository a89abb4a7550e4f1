package params

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalid is returned (wrapped) when a parameter record breaks an invariant.
var ErrInvalid = errors.New("invalid geometry parameters")

// RGB is an 8-bit per channel color. It reads and writes as "#RRGGBB" in YAML.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustHex is ParseHex for package-level constants.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// MarshalYAML implements yaml.Marshaler.
func (c RGB) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for hex strings.
func (c *RGB) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalText lets env overrides use the same hex form.
func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// GeometryParameters is the complete set of extrusion and material inputs for the text mesh.
// Values are compared with == (the struct is comparable); a record is only ever replaced as a whole.
type GeometryParameters struct {
	Size           float32 `yaml:"size"`
	Height         float32 `yaml:"height"`
	Color          RGB     `yaml:"color"`
	CurveSegments  float32 `yaml:"curve_segments"`
	BevelEnabled   bool    `yaml:"bevel_enabled"`
	BevelThickness float32 `yaml:"bevel_thickness"`
	BevelSize      float32 `yaml:"bevel_size"`
	BevelSegments  float32 `yaml:"bevel_segments"`
}

// Default returns the startup record: size 0.5, height 0.4, color #27BB80, bevel on with zero extent.
func Default() GeometryParameters {
	return GeometryParameters{
		Size:           0.5,
		Height:         0.4,
		Color:          RGB{R: 0x27, G: 0xBB, B: 0x80},
		CurveSegments:  0.1,
		BevelEnabled:   true,
		BevelThickness: 0,
		BevelSize:      0,
		BevelSegments:  0,
	}
}

// Validate reports the first broken invariant, wrapped in ErrInvalid.
func (p GeometryParameters) Validate() error {
	fields := []struct {
		name     string
		v        float32
		positive bool
	}{
		{"size", p.Size, true},
		{"height", p.Height, true},
		{"curve_segments", p.CurveSegments, false},
		{"bevel_thickness", p.BevelThickness, false},
		{"bevel_size", p.BevelSize, false},
		{"bevel_segments", p.BevelSegments, false},
	}
	for _, f := range fields {
		v := float64(f.v)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalid, f.name)
		}
		if f.positive && v <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %g", ErrInvalid, f.name, v)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %g", ErrInvalid, f.name, v)
		}
	}
	return nil
}
