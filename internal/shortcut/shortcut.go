// Package shortcut binds key combos to viewer actions on a process-wide keyboard bus.
package shortcut

import (
	"go.uber.org/zap"
)

// Bus fans key events out to listeners. It is the single keyboard source for the window.
type Bus struct {
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(KeyEvent)
}

// Listen registers fn and returns a function that removes it. Removing twice is harmless.
func (b *Bus) Listen(fn func(KeyEvent)) (remove func()) {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers ev to every listener registered when Emit was called.
func (b *Bus) Emit(ev KeyEvent) {
	ls := append([]listener(nil), b.listeners...)
	for _, l := range ls {
		l.fn(ev)
	}
}

// Len is the number of registered listeners.
func (b *Bus) Len() int {
	return len(b.listeners)
}

// Binding is one combo and the action it runs.
type Binding struct {
	Combo Combo
	Name  string
	Run   func()
}

// Dispatcher runs the first binding matching each key event.
type Dispatcher struct {
	log      *zap.Logger
	bindings []Binding
}

// New returns a dispatcher with no bindings. A nil logger discards output.
func New(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{log: log}
}

// Bind adds an action. Earlier bindings win when several match.
func (d *Dispatcher) Bind(c Combo, name string, run func()) {
	d.bindings = append(d.bindings, Binding{Combo: c, Name: name, Run: run})
}

// Bindings returns the bindings in match order.
func (d *Dispatcher) Bindings() []Binding {
	return append([]Binding(nil), d.bindings...)
}

// Keys lists the distinct keys the bindings use, for input polling.
func (d *Dispatcher) Keys() []Key {
	seen := make(map[Key]bool)
	var keys []Key
	for _, b := range d.bindings {
		if !seen[b.Combo.Key] {
			seen[b.Combo.Key] = true
			keys = append(keys, b.Combo.Key)
		}
	}
	return keys
}

// Handle runs the first matching binding and reports whether one ran.
func (d *Dispatcher) Handle(ev KeyEvent) bool {
	for _, b := range d.bindings {
		if !b.Combo.Matches(ev) {
			continue
		}
		d.log.Info("shortcut", zap.String("combo", b.Combo.String()), zap.String("action", b.Name))
		b.Run()
		return true
	}
	return false
}

// Mount registers the dispatcher on bus. The owner defers the returned unmount so the listener
// is removed on every exit path, panics included.
func (d *Dispatcher) Mount(bus *Bus) (unmount func()) {
	remove := bus.Listen(func(ev KeyEvent) { d.Handle(ev) })
	done := false
	return func() {
		if done {
			return
		}
		done = true
		remove()
	}
}

// Actions are the viewer operations shortcuts can trigger.
type Actions struct {
	Reset func()
	Home  func()
}

// Keymap lists the combos for each action.
type Keymap struct {
	Reset []Combo `yaml:"reset" env:"RESET"`
	Home  []Combo `yaml:"home" env:"HOME"`
}

// DefaultKeymap binds both Ctrl+Z and Ctrl+Y to reset, and Home to the camera home pose.
func DefaultKeymap() Keymap {
	return Keymap{
		Reset: []Combo{{Mods: ModCtrl, Key: KeyZ}, {Mods: ModCtrl, Key: KeyY}},
		Home:  []Combo{{Key: KeyHome}},
	}
}

// BindKeymap binds every combo in km to its action. Nil actions are skipped.
func (d *Dispatcher) BindKeymap(km Keymap, a Actions) {
	if a.Reset != nil {
		for _, c := range km.Reset {
			d.Bind(c, "reset", a.Reset)
		}
	}
	if a.Home != nil {
		for _, c := range km.Home {
			d.Bind(c, "home", a.Home)
		}
	}
}
