package space

import (
	"errors"
	"math"
	"testing"
)

func newTestSpace(t *testing.T, opts ...Option) *Space {
	t.Helper()
	sp, err := Factory.NewSpace(opts...)
	if err != nil {
		t.Fatalf("Failed to create space: %v", err)
	}
	return sp
}

// everywhere returns an engine housing the whole test world.
func everywhere() *fakeEngine {
	return newFakeEngine("world", Vector3{X: -100, Y: -100, Z: -100}, Vector3{X: 100, Y: 100, Z: 100})
}

// collideFirst reports a collision on the first n calls.
func collideFirst(n int, calls *int) func(Embodied) bool {
	return func(Embodied) bool {
		*calls++
		return *calls <= n
	}
}

func uniformBatch(typ, id string, quantity, maxTrials int) DistributeConfig {
	return DistributeConfig{
		Position: GeneratorConfig{
			Method: MethodUniform,
			Min:    Vector3{X: -10, Y: -10},
			Max:    Vector3{X: 10, Y: 10},
		},
		Orientation: GeneratorConfig{Method: MethodConstant},
		Entity:      EntityConfig{Type: typ, ID: id},
		Quantity:    quantity,
		MaxTrials:   maxTrials,
	}
}

func TestDistributeRetriesUntilFree(t *testing.T) {
	for _, maxTrials := range []int{0, 1, 3, 10} {
		engine := everywhere()
		calls := 0
		engine.collide = collideFirst(maxTrials, &calls)
		sp := newTestSpace(t, WithEngines(engine))

		placed, err := sp.Distribute(uniformBatch("body", "b", 1, maxTrials))
		if err != nil {
			t.Fatalf("max_trials=%d: Distribute() error = %v", maxTrials, err)
		}
		if placed != 1 {
			t.Errorf("max_trials=%d: placed %d, want 1", maxTrials, placed)
		}
		if calls != maxTrials+1 {
			t.Errorf("max_trials=%d: %d attempts, want %d", maxTrials, calls, maxTrials+1)
		}
		if len(engine.added) != maxTrials+1 || len(engine.removed) != maxTrials {
			t.Errorf("max_trials=%d: engine saw %d adds and %d removals", maxTrials, len(engine.added), len(engine.removed))
		}
		if sp.Registry().Len() != 1 {
			t.Errorf("max_trials=%d: registry holds %d entities, want 1", maxTrials, sp.Registry().Len())
		}
	}
}

func TestDistributeExhaustsTrials(t *testing.T) {
	const maxTrials = 4
	engine := everywhere()
	calls := 0
	engine.collide = func(Embodied) bool {
		calls++
		return true
	}
	sp := newTestSpace(t, WithEngines(engine))

	placed, err := sp.Distribute(uniformBatch("composite", "bot", 3, maxTrials))

	var exhausted PlacementExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Distribute() error = %v, want PlacementExhaustedError", err)
	}
	if calls != maxTrials+1 {
		t.Errorf("%d attempts, want %d", calls, maxTrials+1)
	}
	if placed != 0 || exhausted.Placed != 0 {
		t.Errorf("Placed = %d / %d, want 0", placed, exhausted.Placed)
	}
	if exhausted.BaseID != "bot" || exhausted.Type != "composite" {
		t.Errorf("Error names %q/%q, want bot/composite", exhausted.BaseID, exhausted.Type)
	}
	if sp.Registry().Len() != 0 {
		t.Errorf("Registry holds %d entities after failure, want 0", sp.Registry().Len())
	}
	if sp.anchors.Len() != 0 {
		t.Errorf("%d anchors leaked by discarded candidates", sp.anchors.Len())
	}
}

func TestDistributeAbortsBatch(t *testing.T) {
	engine := everywhere()
	calls := 0
	// The first entity lands at once, every later attempt collides.
	engine.collide = func(Embodied) bool {
		calls++
		return calls > 1
	}
	sp := newTestSpace(t, WithEngines(engine))

	placed, err := sp.Distribute(uniformBatch("body", "b", 5, 2))

	var exhausted PlacementExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Distribute() error = %v, want PlacementExhaustedError", err)
	}
	if placed != 1 || exhausted.Placed != 1 {
		t.Errorf("Placed = %d / %d, want 1", placed, exhausted.Placed)
	}
	var located DistributionError
	if !errors.As(err, &located) || located.Index != 1 {
		t.Errorf("DistributionError = %+v, want index 1", located)
	}
	if _, ok := sp.Registry().Entity("b0"); !ok {
		t.Errorf("Placed entity b0 missing")
	}
}

func TestDistributeNaming(t *testing.T) {
	sp := newTestSpace(t, WithEngines(everywhere()))
	cfg := uniformBatch("composite", "bot", 3, 0)
	cfg.BaseNum = 5

	if _, err := sp.Distribute(cfg); err != nil {
		t.Fatalf("Distribute() error = %v", err)
	}
	for _, id := range []string{"bot5", "bot6", "bot7", "bot5.body", "bot7.body"} {
		if _, ok := sp.Registry().Entity(id); !ok {
			t.Errorf("Entity %q not registered", id)
		}
	}
	if _, ok := sp.Registry().Entity("bot0"); ok {
		t.Errorf("Entity bot0 registered despite base_num 5")
	}
}

func TestDistributeAppliesPose(t *testing.T) {
	sp := newTestSpace(t, WithEngines(everywhere()))
	cfg := DistributeConfig{
		Position:    GeneratorConfig{Method: MethodConstant, Values: Vector3{X: 1, Y: 2, Z: 3}},
		Orientation: GeneratorConfig{Method: MethodConstant, Values: Vector3{X: 90}},
		Entity:      EntityConfig{Type: "composite", ID: "bot"},
		Quantity:    1,
	}

	if _, err := sp.Distribute(cfg); err != nil {
		t.Fatalf("Distribute() error = %v", err)
	}
	e, ok := sp.Registry().Entity("bot0")
	if !ok {
		t.Fatalf("bot0 not registered")
	}
	body, ok := e.Capability().Embodied()
	if !ok {
		t.Fatalf("bot0 has no body")
	}
	if body.Position() != (Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Position = %v, want 1,2,3", body.Position())
	}
	heading := body.Orientation().Rotate(Vector3{X: 1})
	if math.Abs(heading.Y-1) > 1e-9 {
		t.Errorf("Heading = %v, want +y", heading)
	}
}

func TestDistributePositionalSkipsCollisions(t *testing.T) {
	engine := everywhere()
	engine.collide = func(Embodied) bool { return true }
	sp := newTestSpace(t, WithEngines(engine))

	placed, err := sp.Distribute(uniformBatch("point", "light", 4, 0))
	if err != nil {
		t.Fatalf("Distribute() error = %v", err)
	}
	if placed != 4 {
		t.Errorf("Placed %d, want 4", placed)
	}
	if len(engine.added) != 0 {
		t.Errorf("Positional entities reached the physics engine")
	}
}

func TestDistributeNotPlaceable(t *testing.T) {
	sp := newTestSpace(t)
	err := sp.Catalog().Register("group", func(Scope) Entity {
		e := NewBaseEntity("group")
		return &e
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err = sp.Distribute(uniformBatch("group", "g", 1, 3))
	var notPlaceable NotPlaceableError
	if !errors.As(err, &notPlaceable) {
		t.Fatalf("Distribute() error = %v, want NotPlaceableError", err)
	}
	if sp.Registry().Len() != 0 {
		t.Errorf("Registry holds %d entities, want 0", sp.Registry().Len())
	}
}

func TestDistributeGridCannotRetry(t *testing.T) {
	engine := everywhere()
	calls := 0
	engine.collide = collideFirst(1, &calls)
	sp := newTestSpace(t, WithEngines(engine))

	cfg := DistributeConfig{
		Position: GeneratorConfig{
			Method:    MethodGrid,
			Layout:    [3]int{2, 2, 1},
			Distances: Vector3{X: 1, Y: 1},
		},
		Orientation: GeneratorConfig{Method: MethodConstant},
		Entity:      EntityConfig{Type: "body", ID: "b"},
		Quantity:    2,
		MaxTrials:   10,
	}
	_, err := sp.Distribute(cfg)
	var retryErr GridRetryUnsupportedError
	if !errors.As(err, &retryErr) {
		t.Fatalf("Distribute() error = %v, want GridRetryUnsupportedError", err)
	}
}

func TestDistributeConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  DistributeConfig
	}{
		{"No entity type", uniformBatch("", "x", 1, 1)},
		{"No base id", uniformBatch("body", "", 1, 1)},
		{"Negative quantity", uniformBatch("body", "x", -1, 1)},
		{"Bad position method", DistributeConfig{
			Position:    GeneratorConfig{Method: "spiral"},
			Orientation: GeneratorConfig{Method: MethodConstant},
			Entity:      EntityConfig{Type: "body", ID: "x"},
			Quantity:    1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := newTestSpace(t, WithEngines(everywhere()))
			placed, err := sp.Distribute(tt.cfg)
			var cfgErr ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Distribute() error = %v, want ConfigurationError", err)
			}
			if placed != 0 {
				t.Errorf("Placed %d, want 0", placed)
			}
		})
	}
}

func TestDistributeUnknownType(t *testing.T) {
	sp := newTestSpace(t, WithEngines(everywhere()))
	_, err := sp.Distribute(uniformBatch("hovercraft", "h", 1, 1))
	var unknown UnknownTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("Distribute() error = %v, want UnknownTypeError", err)
	}
}

func TestDistributeWithoutHousingEngine(t *testing.T) {
	engine := newFakeEngine("small", Vector3{X: 50}, Vector3{X: 60})
	sp := newTestSpace(t, WithEngines(engine))
	_, err := sp.Distribute(uniformBatch("body", "b", 1, 1))
	var noHousing NoHousingEngineError
	if !errors.As(err, &noHousing) {
		t.Fatalf("Distribute() error = %v, want NoHousingEngineError", err)
	}
	if sp.Registry().Len() != 0 {
		t.Errorf("Registry holds %d entities after failed assignment", sp.Registry().Len())
	}
}
