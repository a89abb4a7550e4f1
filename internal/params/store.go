package params

// Store holds the current GeometryParameters. There is no per-field setter: producers hand in
// whole records, so observers never see a mix of old and new fields.
//
// Store is not safe for concurrent use; it lives on the frame loop thread.
type Store struct {
	current   GeometryParameters
	defaults  GeometryParameters
	revision  uint64
	observers []observer
	nextID    uint64
}

type observer struct {
	id uint64
	fn func(GeometryParameters)
}

// NewStore returns a store holding defaults, which is also what Reset restores.
// defaults must be valid; use Default() when no configuration overrides it.
func NewStore(defaults GeometryParameters) (*Store, error) {
	if err := defaults.Validate(); err != nil {
		return nil, err
	}
	return &Store{current: defaults, defaults: defaults}, nil
}

// Get returns the current record by value.
func (s *Store) Get() GeometryParameters {
	return s.current
}

// Default returns the record Reset restores.
func (s *Store) Default() GeometryParameters {
	return s.defaults
}

// Revision counts applied changes. Equal replacements do not advance it.
func (s *Store) Revision() uint64 {
	return s.revision
}

// Replace swaps in next. Invalid records are rejected and leave the store untouched.
// A record equal to the current one is accepted without notifying observers.
func (s *Store) Replace(next GeometryParameters) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if next == s.current {
		return nil
	}
	s.current = next
	s.revision++
	// Copy so an observer may unsubscribe during notification.
	obs := append([]observer(nil), s.observers...)
	for _, o := range obs {
		o.fn(next)
	}
	return nil
}

// Reset replaces the current record with the defaults.
func (s *Store) Reset() {
	// defaults were validated in NewStore.
	_ = s.Replace(s.defaults)
}

// Subscribe registers fn to run after every applied change. The returned func removes it and
// may be called more than once.
func (s *Store) Subscribe(fn func(GeometryParameters)) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		for i := range s.observers {
			if s.observers[i].id == id {
				copy(s.observers[i:], s.observers[i+1:])
				s.observers[len(s.observers)-1] = observer{}
				s.observers = s.observers[:len(s.observers)-1]
				return
			}
		}
	}
}
