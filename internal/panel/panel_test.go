package panel

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"text-stage/internal/params"
)

// scripted echoes every widget's input unless an override is set for its label.
type scripted struct {
	sliders map[string]float32
	checks  map[string]bool
	colors  map[string]params.RGB
	reset   bool
	drawn   []string
}

func (s *scripted) Panel(Rect, string) {}

func (s *scripted) Slider(_ Rect, label, _ string, v, _, _ float32) float32 {
	s.drawn = append(s.drawn, label)
	if n, ok := s.sliders[label]; ok {
		return n
	}
	return v
}

func (s *scripted) CheckBox(_ Rect, label string, checked bool) bool {
	s.drawn = append(s.drawn, label)
	if b, ok := s.checks[label]; ok {
		return b
	}
	return checked
}

func (s *scripted) ColorPicker(_ Rect, label string, c params.RGB) params.RGB {
	s.drawn = append(s.drawn, label)
	if n, ok := s.colors[label]; ok {
		return n
	}
	return c
}

func (s *scripted) Button(Rect, string) bool { return s.reset }

func newPanel(t *testing.T) (*Panel, *params.Store) {
	t.Helper()
	store, err := params.NewStore(params.Default())
	if err != nil {
		t.Fatal(err)
	}
	return New(store, 0, 0, zaptest.NewLogger(t)), store
}

func TestDrawsEverySchemaField(t *testing.T) {
	p, _ := newPanel(t)
	w := &scripted{}
	p.Draw(w)
	schema := params.Schema()
	if len(w.drawn) != len(schema) {
		t.Fatalf("drawn %v, want %d widgets", w.drawn, len(schema))
	}
	for i, f := range schema {
		if w.drawn[i] != f.Name {
			t.Errorf("widget %d = %q, want %q", i, w.drawn[i], f.Name)
		}
	}
	if p.Pending() {
		t.Error("untouched widgets queued an edit")
	}
}

func TestEditAppliesNextFrame(t *testing.T) {
	p, store := newPanel(t)
	var seen []params.GeometryParameters
	store.Subscribe(func(g params.GeometryParameters) { seen = append(seen, g) })

	p.Draw(&scripted{sliders: map[string]float32{"size": 2}})
	if store.Get().Size != params.Default().Size {
		t.Fatal("edit reached the store during Draw")
	}
	if !p.Pending() {
		t.Fatal("slider change did not queue an edit")
	}
	if err := p.ApplyPending(); err != nil {
		t.Fatalf("ApplyPending: %v", err)
	}
	want := params.Default()
	want.Size = 2
	if len(seen) != 1 || seen[0] != want {
		t.Errorf("observers saw %+v, want one full record %+v", seen, want)
	}
	if p.Pending() {
		t.Error("edit still pending after apply")
	}
}

func TestSeveralEditsInOneFrameMerge(t *testing.T) {
	p, store := newPanel(t)
	var notifications int
	store.Subscribe(func(params.GeometryParameters) { notifications++ })

	green := params.MustHex("#00FF00")
	p.Draw(&scripted{
		sliders: map[string]float32{"height": 1},
		checks:  map[string]bool{"bevelEnabled": false},
		colors:  map[string]params.RGB{"color": green},
	})
	if err := p.ApplyPending(); err != nil {
		t.Fatal(err)
	}
	got := store.Get()
	if got.Height != 1 || got.BevelEnabled || got.Color != green {
		t.Errorf("store = %+v, want height 1, bevel off, green", got)
	}
	if notifications != 1 {
		t.Errorf("notifications = %d, want 1", notifications)
	}
}

func TestSliderJitterIsDropped(t *testing.T) {
	p, _ := newPanel(t)
	// 0.52 snaps back to the current 0.5.
	p.Draw(&scripted{sliders: map[string]float32{"size": 0.52}})
	if p.Pending() {
		t.Error("edit that snaps to the current value was queued")
	}
}

func TestSizeSliderAtZeroStaysValid(t *testing.T) {
	p, store := newPanel(t)
	p.Draw(&scripted{sliders: map[string]float32{"size": 0}})
	if err := p.ApplyPending(); err != nil {
		t.Fatalf("ApplyPending: %v", err)
	}
	if got := store.Get().Size; got <= 0 {
		t.Errorf("size = %v, want > 0", got)
	}
}

func TestResetButton(t *testing.T) {
	p, store := newPanel(t)
	p.Draw(&scripted{sliders: map[string]float32{"size": 3}})
	if err := p.ApplyPending(); err != nil {
		t.Fatal(err)
	}

	p.Draw(&scripted{sliders: map[string]float32{"height": 1}, reset: true})
	if err := p.ApplyPending(); err != nil {
		t.Fatal(err)
	}
	if got := store.Get(); got != params.Default() {
		t.Errorf("after reset store = %+v, want defaults", got)
	}
	if p.Pending() {
		t.Error("reset left a queued edit")
	}
}

func TestContains(t *testing.T) {
	p, _ := newPanel(t)
	b := p.Bounds()
	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"top-left corner", b.X, b.Y, true},
		{"inside", b.X + b.W/2, b.Y + b.H/2, true},
		{"right edge", b.X + b.W, b.Y + 1, false},
		{"below", b.X + 1, b.Y + b.H + 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
