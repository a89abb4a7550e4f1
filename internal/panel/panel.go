// Package panel is the parameter editor drawn over the scene. Each widget edit becomes a complete
// replacement record that is queued and handed to the store at the start of the next frame.
package panel

import (
	"fmt"

	"go.uber.org/zap"

	"text-stage/internal/params"
)

const (
	width       = 300
	labelWidth  = 110
	valueWidth  = 40
	padding     = 10
	titleHeight = 24
	rowHeight   = 20
	colorHeight = 96
	rowGap      = 6
)

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Widgets is the immediate-mode toolkit the panel draws with.
type Widgets interface {
	Panel(r Rect, title string)
	Slider(r Rect, label, value string, v, min, max float32) float32
	CheckBox(r Rect, label string, checked bool) bool
	ColorPicker(r Rect, label string, c params.RGB) params.RGB
	Button(r Rect, label string) bool
}

type row struct {
	field params.Field
	rect  Rect
}

// Panel edits a params.Store through the schema fields.
type Panel struct {
	store   *params.Store
	log     *zap.Logger
	bounds  Rect
	rows    []row
	reset   Rect
	pending *params.GeometryParameters
	resetRq bool
}

// New lays the schema out in a column whose top-left corner is (x, y).
func New(store *params.Store, x, y float32, log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Panel{store: store, log: log}
	cy := y + titleHeight + padding
	for _, f := range params.Schema() {
		h := float32(rowHeight)
		if f.Kind == params.KindColor {
			h = colorHeight
		}
		p.rows = append(p.rows, row{
			field: f,
			rect:  Rect{X: x + padding + labelWidth, Y: cy, W: width - 2*padding - labelWidth - valueWidth, H: h},
		})
		cy += h + rowGap
	}
	p.reset = Rect{X: x + padding, Y: cy, W: width - 2*padding, H: rowHeight + 4}
	cy += p.reset.H + padding
	p.bounds = Rect{X: x, Y: y, W: width, H: cy - y}
	return p
}

// Bounds is the screen area the panel covers.
func (p *Panel) Bounds() Rect {
	return p.bounds
}

// Contains reports whether a pointer at (x, y) is over the panel. Such pointers are not routed
// to the scene.
func (p *Panel) Contains(x, y float32) bool {
	return p.bounds.Contains(x, y)
}

// Pending reports whether an edit or reset is waiting for the next frame.
func (p *Panel) Pending() bool {
	return p.pending != nil || p.resetRq
}

// current is the record the widgets show: the queued edit if any, else the store's value.
func (p *Panel) current() params.GeometryParameters {
	if p.pending != nil {
		return *p.pending
	}
	return p.store.Get()
}

// Draw renders the widgets and queues any edit they report.
func (p *Panel) Draw(w Widgets) {
	w.Panel(p.bounds, "Text geometry")
	cur := p.current()
	for _, r := range p.rows {
		v, changed := p.drawRow(w, r, cur)
		if changed {
			p.Edit(r.field, v)
			cur = p.current()
		}
	}
	if w.Button(p.reset, "Reset") {
		p.RequestReset()
	}
}

func (p *Panel) drawRow(w Widgets, r row, cur params.GeometryParameters) (params.Value, bool) {
	f := r.field
	old := f.Read(cur)
	switch f.Kind {
	case params.KindBool:
		b := w.CheckBox(Rect{X: r.rect.X, Y: r.rect.Y, W: rowHeight, H: rowHeight}, f.Name, old.Bool)
		return params.Value{Bool: b}, b != old.Bool
	case params.KindColor:
		c := w.ColorPicker(r.rect, f.Name, old.Color)
		return params.Value{Color: c}, c != old.Color
	default:
		n := w.Slider(r.rect, f.Name, fmt.Sprintf("%.1f", old.Number), old.Number, f.Min, f.Max)
		return params.Value{Number: n}, n != old.Number
	}
}

// Edit queues a full record with field f set to v. Edits that snap back to the current value
// are dropped.
func (p *Panel) Edit(f params.Field, v params.Value) {
	cur := p.current()
	next, err := f.Apply(cur, v)
	if err != nil {
		p.log.Warn("edit rejected", zap.String("field", f.Name), zap.Error(err))
		return
	}
	if next == cur {
		return
	}
	p.pending = &next
}

// RequestReset queues a reset to the defaults. It supersedes any queued edit.
func (p *Panel) RequestReset() {
	p.resetRq = true
	p.pending = nil
}

// ApplyPending hands the queued edit or reset to the store.
func (p *Panel) ApplyPending() error {
	if p.resetRq {
		p.resetRq = false
		p.store.Reset()
		p.log.Info("parameters reset")
		return nil
	}
	if p.pending == nil {
		return nil
	}
	next := *p.pending
	p.pending = nil
	if err := p.store.Replace(next); err != nil {
		return fmt.Errorf("apply panel edit: %w", err)
	}
	return nil
}
