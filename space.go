package space

import (
	"errors"
	"fmt"
	"math/rand/v2"

	iter_util "github.com/TheBitDrifter/util/iter"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// State of the step scheduler.
type State uint8

const (
	StateIdle State = iota
	StateTicking
)

func (s State) String() string {
	if s == StateTicking {
		return "ticking"
	}
	return "idle"
}

// pcgStream is the second PCG word derived from the seed.
const pcgStream = 0x9e3779b97f4a7c15

// Space owns the entities of a simulation, their assignment to physics
// engines and the simulation clock.
type Space struct {
	id       string
	clock    uint64
	state    State
	stepping bool
	arena    AABB

	registry      *registry
	dispatcher    *Dispatcher
	media         []Medium
	controllables []Controllable
	loop          LoopFunctions
	catalog       Catalog
	anchors       *AnchorStore
	rng           *rand.Rand
	logger        scopedLogger
	parallel      bool
	opQueue       opQueue
}

func newSpace(opts ...Option) (*Space, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	id := uuid.NewString()
	logger := withValues(o.logger, "space", id)

	dispatcher, err := newDispatcher(logger, o.engines...)
	if err != nil {
		return nil, err
	}
	anchors, err := newAnchorStore()
	if err != nil {
		return nil, err
	}
	cat := o.catalog
	if cat == nil {
		cat = defaultCatalog()
	}
	return &Space{
		id:         id,
		registry:   newRegistry(),
		dispatcher: dispatcher,
		media:      o.media,
		loop:       o.loop,
		catalog:    cat,
		anchors:    anchors,
		rng:        rand.New(rand.NewPCG(o.seed, o.seed^pcgStream)),
		logger:     logger,
		parallel:   o.parallel,
		opQueue:    newOpQueue(),
	}, nil
}

func (s *Space) ID() string {
	return s.id
}

// Clock is the number of steps since creation or the last Reset.
func (s *Space) Clock() uint64 {
	return s.clock
}

func (s *Space) State() State {
	return s.state
}

func (s *Space) Arena() AABB {
	return s.arena
}

func (s *Space) Registry() Registry {
	return s.registry
}

func (s *Space) Dispatcher() *Dispatcher {
	return s.dispatcher
}

func (s *Space) Engines() []PhysicsEngine {
	return s.dispatcher.Engines()
}

func (s *Space) Media() []Medium {
	return s.media
}

func (s *Space) Catalog() Catalog {
	return s.catalog
}

func (s *Space) Controllables() []Controllable {
	return s.controllables
}

func (s *Space) Rand() *rand.Rand {
	return s.rng
}

func (s *Space) Scope() Scope {
	return Scope{Anchors: s.anchors, Logger: s.logger}
}

// Init sets up the arena, adds the declared entities and then runs every
// distribution, in that order.
func (s *Space) Init(cfg ArenaConfig) error {
	if cfg.Size.X <= 0 || cfg.Size.Y <= 0 || cfg.Size.Z <= 0 {
		return ConfigurationError{Subject: "arena", Reason: "size must be positive, got " + cfg.Size.String()}
	}
	var center Vector3
	if cfg.Center != nil {
		center = *cfg.Center
	}
	half := cfg.Size.Scale(0.5)
	s.arena = AABB{Min: center.Sub(half), Max: center.Add(half)}

	for _, ec := range cfg.Entities {
		e, err := s.NewEntity(ec)
		if err != nil {
			return err
		}
		if err := s.AddEntity(e); err != nil {
			e.Destroy()
			return fmt.Errorf("failed to add entity %q: %w", ec.ID, err)
		}
	}
	for _, dc := range cfg.Distributions {
		if _, err := s.Distribute(dc); err != nil {
			return err
		}
	}
	s.logger.Info("arena initialized", "entities", s.registry.Len(), "roots", len(s.registry.roots))
	return nil
}

// NewEntity builds and initializes an entity of cfg.Type without adding it.
func (s *Space) NewEntity(cfg EntityConfig) (Entity, error) {
	e, err := s.catalog.New(cfg.Type, s.Scope())
	if err != nil {
		return nil, err
	}
	if err := e.Init(cfg); err != nil {
		e.Destroy()
		return nil, fmt.Errorf("failed to initialize entity %q of type %q: %w", cfg.ID, cfg.Type, err)
	}
	return e, nil
}

// AddEntity registers a root entity and all of its parts, then hands it to the
// physics engines when it is embodied. On failure nothing stays registered.
func (s *Space) AddEntity(e Entity) error {
	if e.Parent() != nil {
		return NotRootError{ID: FullID(e)}
	}
	if s.registry.Locked() {
		return LockedRegistryError{}
	}
	var added []Entity
	for n := range Walk(e) {
		if err := s.registry.Add(n); err != nil {
			s.unregister(added)
			return err
		}
		added = append(added, n)
	}
	if body, ok := e.Capability().Embodied(); ok {
		if err := s.dispatcher.Assign(body); err != nil {
			s.unregister(added)
			return err
		}
	}
	for _, n := range added {
		if c, ok := n.(Controllable); ok {
			s.controllables = append(s.controllables, c)
		}
		if m, ok := n.(MediumMember); ok {
			m.JoinMedia(s.media)
		}
	}
	s.logger.Debug("entity added", "entity", e.ID(), "type", e.Type(), "capability", e.Capability().Kind())
	return nil
}

func (s *Space) unregister(added []Entity) {
	for i := len(added) - 1; i >= 0; i-- {
		_ = s.registry.Remove(added[i])
	}
}

// RemoveEntity releases a root entity from its engines and media, drops it and
// its parts from the registry and destroys it.
func (s *Space) RemoveEntity(e Entity) error {
	if e.Parent() != nil {
		return NotRootError{ID: FullID(e)}
	}
	if s.registry.Locked() {
		return LockedRegistryError{}
	}
	if _, ok := s.registry.Entity(FullID(e)); !ok {
		return UnknownEntityError{ID: FullID(e)}
	}
	var errs []error
	if body, ok := e.Capability().Embodied(); ok {
		errs = append(errs, s.dispatcher.Release(body))
	}
	nodes := iter_util.Collect(Walk(e))
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if c, ok := n.(Controllable); ok {
			s.removeControllable(c)
		}
		if m, ok := n.(MediumMember); ok {
			m.LeaveMedia()
		}
		errs = append(errs, s.registry.Remove(n))
	}
	e.Destroy()
	s.logger.Debug("entity removed", "entity", e.ID(), "type", e.Type())
	return errors.Join(errs...)
}

func (s *Space) removeControllable(c Controllable) {
	for i, existing := range s.controllables {
		if existing == c {
			s.controllables = append(s.controllables[:i], s.controllables[i+1:]...)
			return
		}
	}
}

// Distribute places cfg.Quantity entities and returns how many were placed.
func (s *Space) Distribute(cfg DistributeConfig) (int, error) {
	d, err := newDistributor(s, cfg)
	if err != nil {
		return 0, DistributionError{BaseID: cfg.Entity.ID, Err: err}
	}
	return d.Run()
}

// Update advances the simulation by one step. The phases run in a fixed order:
// clock, act, physics, media, pre-step hook, sense+step, post-step hook, log
// flush. The registry is locked while entity code runs; mutations queued
// meanwhile are applied right before the following hook.
func (s *Space) Update() error {
	if s.stepping {
		return ReentrantUpdateError{}
	}
	s.stepping = true
	defer func() { s.stepping = false }()
	s.state = StateTicking

	s.clock++

	s.registry.Lock()
	for _, c := range s.controllables {
		c.Act()
	}
	err := s.updatePhysics()
	if err == nil {
		for _, m := range s.media {
			m.Update()
		}
	}
	s.registry.Unlock()
	if qerr := s.processOperationQueue(); qerr != nil && err == nil {
		err = qerr
	}
	if err != nil {
		return fmt.Errorf("step %d: %w", s.clock, err)
	}

	s.loop.PreStep()

	s.registry.Lock()
	for _, c := range s.controllables {
		c.SenseStep()
	}
	s.registry.Unlock()
	if err := s.processOperationQueue(); err != nil {
		return fmt.Errorf("step %d: %w", s.clock, err)
	}

	s.loop.PostStep()

	if err := s.logger.Flush(); err != nil {
		return fmt.Errorf("step %d: failed to flush log: %w", s.clock, err)
	}
	return nil
}

// updatePhysics steps every engine. In parallel mode engines run
// concurrently; bodies shared by several engines guard their own pose.
func (s *Space) updatePhysics() error {
	engines := s.dispatcher.Engines()
	if !s.parallel {
		for _, e := range engines {
			if err := e.Update(); err != nil {
				return fmt.Errorf("physics engine %q: %w", e.ID(), err)
			}
		}
		return nil
	}
	var g errgroup.Group
	for _, e := range engines {
		g.Go(func() error {
			if err := e.Update(); err != nil {
				return fmt.Errorf("physics engine %q: %w", e.ID(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Reset zeroes the clock and resets every registered entity. Placement and
// engine assignment are kept.
func (s *Space) Reset() {
	s.clock = 0
	s.state = StateIdle
	s.registry.Reset()
	s.logger.Info("space reset", "entities", s.registry.Len())
}

// Destroy removes every root entity, last added first.
func (s *Space) Destroy() error {
	for len(s.registry.roots) > 0 {
		root := s.registry.roots[len(s.registry.roots)-1]
		if err := s.RemoveEntity(root); err != nil {
			return fmt.Errorf("failed to destroy %q: %w", FullID(root), err)
		}
	}
	return nil
}

// SharedEntities lists the root entities housed by more than one engine.
// Only static entities can be shared.
func (s *Space) SharedEntities() []Entity {
	var shared []Entity
	for _, root := range s.registry.roots {
		body, ok := root.Capability().Embodied()
		if !ok {
			continue
		}
		if len(s.dispatcher.Housing(body.Engines())) > 1 {
			shared = append(shared, root)
		}
	}
	return shared
}
