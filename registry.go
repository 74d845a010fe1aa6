package space

import (
	"fmt"
	"iter"
	"maps"
	"path"
	"slices"
)

var _ Registry = &registry{}

// registry indexes entities by full id, by type and by root-ness. It does not
// own the entities: ownership follows the entity tree.
type registry struct {
	locked    bool
	ordered   []Entity
	positions map[string]int
	byType    map[string]map[string]Entity
	roots     []Entity
}

func newRegistry() *registry {
	return &registry{
		positions: make(map[string]int),
		byType:    make(map[string]map[string]Entity),
	}
}

func (r *registry) Add(e Entity) error {
	if r.locked {
		return LockedRegistryError{}
	}
	id := FullID(e)
	if _, taken := r.positions[id]; taken {
		return DuplicateIdentityError{ID: id}
	}
	r.positions[id] = len(r.ordered)
	r.ordered = append(r.ordered, e)

	perType, ok := r.byType[e.Type()]
	if !ok {
		perType = make(map[string]Entity)
		r.byType[e.Type()] = perType
	}
	perType[id] = e

	if e.Parent() == nil {
		r.roots = append(r.roots, e)
	}
	return nil
}

// Remove swaps the last entity into the freed slot, so iteration order after
// a removal is not insertion order.
func (r *registry) Remove(e Entity) error {
	if r.locked {
		return LockedRegistryError{}
	}
	id := FullID(e)
	pos, ok := r.positions[id]
	if !ok {
		return UnknownEntityError{ID: id}
	}
	last := len(r.ordered) - 1
	if pos != last {
		moved := r.ordered[last]
		r.ordered[pos] = moved
		r.positions[FullID(moved)] = pos
	}
	r.ordered[last] = nil
	r.ordered = r.ordered[:last]
	delete(r.positions, id)

	// The per-type map survives empty: the type was registered once.
	delete(r.byType[e.Type()], id)

	if e.Parent() == nil {
		if i := slices.Index(r.roots, e); i >= 0 {
			r.roots = slices.Delete(r.roots, i, i+1)
		}
	}
	return nil
}

func (r *registry) Entity(fullID string) (Entity, bool) {
	pos, ok := r.positions[fullID]
	if !ok {
		return nil, false
	}
	return r.ordered[pos], true
}

func (r *registry) Roots() []Entity {
	return slices.Clone(r.roots)
}

func (r *registry) Len() int {
	return len(r.ordered)
}

// FindByPattern matches full ids against a shell pattern, see path.Match.
func (r *registry) FindByPattern(pattern string) (iter.Seq[Entity], error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid entity pattern %q: %w", pattern, err)
	}
	return func(yield func(Entity) bool) {
		for _, e := range r.ordered {
			if ok, _ := path.Match(pattern, FullID(e)); ok {
				if !yield(e) {
					return
				}
			}
		}
	}, nil
}

func (r *registry) EntitiesOfType(typ string) (map[string]Entity, error) {
	perType, ok := r.byType[typ]
	if !ok {
		return nil, UnknownTypeError{Type: typ}
	}
	return maps.Clone(perType), nil
}

func (r *registry) Query(node QueryNode) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range r.ordered {
			if node.Evaluate(e) && !yield(e) {
				return
			}
		}
	}
}

func (r *registry) Reset() {
	for _, e := range r.ordered {
		e.Reset()
	}
}

func (r *registry) Locked() bool {
	return r.locked
}

func (r *registry) Lock() {
	r.locked = true
}

func (r *registry) Unlock() {
	r.locked = false
}
