package xcodeproj

import (
	"fmt"
	"slices"
)

// objectStore is the project's object registry. It owns the id-to-object
// mapping and remembers registration order so that enumeration is
// deterministic across runs.
type objectStore struct {
	byID  map[string]*Object
	order []string
}

func newObjectStore() *objectStore {
	return &objectStore{byID: make(map[string]*Object)}
}

func (s *objectStore) register(o *Object) error {
	if _, ok := s.byID[o.id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, o.id)
	}
	s.byID[o.id] = o
	s.order = append(s.order, o.id)
	return nil
}

func (s *objectStore) lookup(id string) *Object {
	return s.byID[id]
}

func (s *objectStore) contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

func (s *objectStore) remove(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *objectStore) count() int {
	return len(s.byID)
}

// all returns the registered objects in registration order.
func (s *objectStore) all() []*Object {
	out := make([]*Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// byIsa returns the registered objects of the given class, in
// registration order.
func (s *objectStore) byIsa(isa string) []*Object {
	var out []*Object
	for _, id := range s.order {
		if o := s.byID[id]; o.kind.Name == isa {
			out = append(out, o)
		}
	}
	return out
}
