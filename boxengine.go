package space

import "slices"

var _ PhysicsEngine = &BoxEngine{}

// DefaultTimeStep is the simulated time covered by one BoxEngine step, in
// seconds.
const DefaultTimeStep = 0.1

// BoxEngine is a minimal engine over an axis aligned region. Each step it
// moves actuated movable bodies by velocity*dt and refuses moves that would
// overlap another body. Bounding boxes do not rotate.
type BoxEngine struct {
	id       string
	region   AABB
	timeStep float64
	roots    []Entity
	bodies   []Embodied
	steps    uint64
}

func newBoxEngine(id string, region AABB) *BoxEngine {
	return &BoxEngine{id: id, region: region, timeStep: DefaultTimeStep}
}

func (e *BoxEngine) ID() string {
	return e.id
}

func (e *BoxEngine) Region() AABB {
	return e.region
}

func (e *BoxEngine) SetTimeStep(seconds float64) {
	e.timeStep = seconds
}

func (e *BoxEngine) Steps() uint64 {
	return e.steps
}

func (e *BoxEngine) Contains(p Vector3) bool {
	return e.region.Contains(p)
}

func (e *BoxEngine) Add(root Entity) error {
	body, ok := root.Capability().Embodied()
	if !ok {
		return ConfigurationError{Subject: "engine " + e.id, Reason: FullID(root) + " has no body"}
	}
	if slices.Contains(e.roots, root) {
		return DuplicateIdentityError{ID: FullID(root)}
	}
	e.roots = append(e.roots, root)
	e.bodies = append(e.bodies, body)
	return nil
}

func (e *BoxEngine) Remove(root Entity) error {
	i := slices.Index(e.roots, root)
	if i < 0 {
		return UnknownEntityError{ID: FullID(root)}
	}
	e.roots = slices.Delete(e.roots, i, i+1)
	e.bodies = slices.Delete(e.bodies, i, i+1)
	return nil
}

func (e *BoxEngine) Entities() []Entity {
	return slices.Clone(e.roots)
}

func (e *BoxEngine) Colliding(body Embodied) bool {
	return e.overlapsAny(body, body.BoundingBox())
}

func (e *BoxEngine) overlapsAny(self Embodied, box AABB) bool {
	for _, other := range e.bodies {
		if other == self {
			continue
		}
		if box.Overlaps(other.BoundingBox()) {
			return true
		}
	}
	return false
}

// Update integrates the velocity of every movable actuated body. Static
// bodies are never written.
func (e *BoxEngine) Update() error {
	e.steps++
	for _, body := range e.bodies {
		if !body.Movable() {
			continue
		}
		actuated, ok := body.(Actuated)
		if !ok {
			continue
		}
		v := actuated.Velocity()
		if v.IsZero() {
			continue
		}
		from := body.Position()
		to := from.Add(v.Scale(e.timeStep))
		box := body.BoundingBox()
		delta := to.Sub(from)
		moved := AABB{Min: box.Min.Add(delta), Max: box.Max.Add(delta)}
		if !e.region.Contains(to) || e.overlapsAny(body, moved) {
			continue
		}
		body.MoveTo(to, body.Orientation())
	}
	return nil
}

func (e *BoxEngine) Reset() {
	e.steps = 0
}
