package params

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Kind is the widget type a Field is edited with.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindColor:
		return "color"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalYAML writes the kind by name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Field describes one editable parameter. Min, Max and Step apply to KindNumber only.
type Field struct {
	Name string  `yaml:"name"`
	Kind Kind    `yaml:"kind"`
	Min  float32 `yaml:"min,omitempty"`
	Max  float32 `yaml:"max,omitempty"`
	Step float32 `yaml:"step,omitempty"`
}

// Value is an edit coming from a widget. Only the member matching the field kind is read.
type Value struct {
	Number float32
	Bool   bool
	Color  RGB
}

// Schema returns the editable fields in panel order.
func Schema() []Field {
	return []Field{
		{Name: "size", Kind: KindNumber, Min: 0, Max: 5, Step: 0.1},
		{Name: "height", Kind: KindNumber, Min: 0.4, Max: 1, Step: 0.1},
		{Name: "color", Kind: KindColor},
		{Name: "curveSegments", Kind: KindNumber, Min: 0.1, Max: 0.3, Step: 0.1},
		{Name: "bevelEnabled", Kind: KindBool},
		{Name: "bevelThickness", Kind: KindNumber, Min: 0, Max: 0.3, Step: 0.1},
		{Name: "bevelSize", Kind: KindNumber, Min: 0, Max: 0.3, Step: 0.1},
		{Name: "bevelSegments", Kind: KindNumber, Min: 0, Max: 0.3, Step: 0.1},
	}
}

// Read returns the field's current value in p.
func (f Field) Read(p GeometryParameters) Value {
	switch f.Name {
	case "size":
		return Value{Number: p.Size}
	case "height":
		return Value{Number: p.Height}
	case "color":
		return Value{Color: p.Color}
	case "curveSegments":
		return Value{Number: p.CurveSegments}
	case "bevelEnabled":
		return Value{Bool: p.BevelEnabled}
	case "bevelThickness":
		return Value{Number: p.BevelThickness}
	case "bevelSize":
		return Value{Number: p.BevelSize}
	case "bevelSegments":
		return Value{Number: p.BevelSegments}
	}
	return Value{}
}

// Apply returns a copy of p with this field set to v. Numbers are snapped to Step and clamped to
// [Min, Max]; size and height never go below one step so the result stays valid.
func (f Field) Apply(p GeometryParameters, v Value) (GeometryParameters, error) {
	n := f.snap(v.Number)
	switch f.Name {
	case "size":
		p.Size = math32.Max(n, f.Step)
	case "height":
		p.Height = math32.Max(n, f.Step)
	case "color":
		p.Color = v.Color
	case "curveSegments":
		p.CurveSegments = n
	case "bevelEnabled":
		p.BevelEnabled = v.Bool
	case "bevelThickness":
		p.BevelThickness = n
	case "bevelSize":
		p.BevelSize = n
	case "bevelSegments":
		p.BevelSegments = n
	default:
		return p, fmt.Errorf("%w: unknown field %q", ErrInvalid, f.Name)
	}
	return p, nil
}

func (f Field) snap(v float32) float32 {
	if f.Kind != KindNumber {
		return v
	}
	if f.Step > 0 {
		steps := math32.Round((v - f.Min) / f.Step)
		v = f.Min + steps*f.Step
		// Keep 0.1 steps from drifting to 0.30000001.
		v = math32.Round(v*1e4) / 1e4
	}
	return math32.Min(math32.Max(v, f.Min), f.Max)
}

// Lookup returns the schema field with the given name.
func Lookup(name string) (Field, bool) {
	for _, f := range Schema() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
