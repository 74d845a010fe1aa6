package space

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
)

// MaxPhysicsEngines bounds the engines of one space; each engine owns one
// membership bit.
const MaxPhysicsEngines = 64

// Dispatcher assigns embodied entities to the physics engines whose region
// contains them. A static entity goes to every housing engine; a movable one
// needs exactly one.
type Dispatcher struct {
	engines []PhysicsEngine
	logger  Logger
}

func newDispatcher(logger Logger, engines ...PhysicsEngine) (*Dispatcher, error) {
	if len(engines) > MaxPhysicsEngines {
		return nil, ConfigurationError{
			Subject: "physics engines",
			Reason:  fmt.Sprintf("%d engines configured, at most %d supported", len(engines), MaxPhysicsEngines),
		}
	}
	seen := make(map[string]struct{}, len(engines))
	for _, e := range engines {
		if _, dup := seen[e.ID()]; dup {
			return nil, ConfigurationError{Subject: "physics engines", Reason: "duplicate engine id " + e.ID()}
		}
		seen[e.ID()] = struct{}{}
	}
	return &Dispatcher{engines: engines, logger: logger}, nil
}

func (d *Dispatcher) Engines() []PhysicsEngine {
	return d.engines
}

// Assign hands the root of body to the engines housing the body position.
func (d *Dispatcher) Assign(body Embodied) error {
	root := Root(body)
	pos := body.Position()

	var (
		housing    []PhysicsEngine
		membership mask.Mask
	)
	for i, e := range d.engines {
		if e.Contains(pos) {
			housing = append(housing, e)
			membership.Mark(uint32(i))
		}
	}

	if len(housing) == 0 {
		return NoHousingEngineError{ID: FullID(root), Position: pos}
	}
	if body.Movable() && len(housing) > 1 {
		ids := make([]string, len(housing))
		for i, e := range housing {
			ids[i] = e.ID()
		}
		return AmbiguousEngineError{ID: FullID(root), Engines: ids}
	}

	for i, e := range housing {
		if err := e.Add(root); err != nil {
			for _, added := range housing[:i] {
				_ = added.Remove(root)
			}
			return fmt.Errorf("engine %q refused %q: %w", e.ID(), FullID(root), err)
		}
	}
	body.SetEngines(housing, membership)
	d.logger.Debug("entity assigned", "entity", FullID(root), "engines", len(housing), "movable", body.Movable())
	return nil
}

// Release removes the root of body from every engine housing it.
func (d *Dispatcher) Release(body Embodied) error {
	root := Root(body)
	membership := body.Engines()
	var firstErr error
	for _, e := range d.Housing(membership) {
		if err := e.Remove(root); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("engine %q failed to release %q: %w", e.ID(), FullID(root), err)
		}
	}
	body.SetEngines(nil, mask.Mask{})
	return firstErr
}

// Housing resolves a membership mask to its engines.
func (d *Dispatcher) Housing(membership mask.Mask) []PhysicsEngine {
	var out []PhysicsEngine
	for i, e := range d.engines {
		var bit mask.Mask
		bit.Mark(uint32(i))
		if membership.ContainsAll(bit) {
			out = append(out, e)
		}
	}
	return out
}
