/*
Package space provides the spatial kernel of a multi-engine robot simulator.

A Space owns every simulated entity, hands each embodied entity to the physics
engine(s) whose region houses it, places batches of entities with stochastic
pose generators and advances simulation time in a fixed phase order.

Core Concepts:

  - Entity: A node in an ownership tree. Composite entities own their parts.
  - Capability: What an entity exposes spatially: Embodied, Positional or neither.
  - PhysicsEngine: A spatial partition that integrates and collides the entities it houses.
  - Dispatcher: Assigns embodied entities to engines (static may straddle, movable may not).
  - Generator: Produces candidate positions and orientations for distribution.
  - Medium: A broadcast channel refreshed once per tick after physics.

Basic Usage:

	left := space.Factory.NewBoxEngine("left", space.AABB{Max: space.Vector3{X: 5, Y: 10, Z: 2}})
	right := space.Factory.NewBoxEngine("right", space.AABB{
		Min: space.Vector3{X: 5},
		Max: space.Vector3{X: 10, Y: 10, Z: 2},
	})
	sp, _ := space.Factory.NewSpace(space.WithEngines(left, right), space.WithSeed(42))

	placed, err := sp.Distribute(space.DistributeConfig{
		Position:    space.GeneratorConfig{Method: space.MethodUniform, Max: space.Vector3{X: 10, Y: 10}},
		Orientation: space.GeneratorConfig{Method: space.MethodConstant},
		Entity:      space.EntityConfig{Type: "composite", ID: "bot", Body: &space.BodyConfig{Movable: true}},
		Quantity:    20,
		MaxTrials:   50,
	})

	for range 100 {
		if err := sp.Update(); err != nil {
			break
		}
	}

The Space is single threaded. Entities are added and removed outside of the
tick phases, or from the pre/post step hooks. Mutations requested while a
phase runs must go through EnqueueAddEntity/EnqueueRemoveEntity.
*/
package space
