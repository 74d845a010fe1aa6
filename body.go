package space

import (
	"errors"
	"sync"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// OriginAnchor is created on every body and sits at the body origin.
const OriginAnchor = "origin"

// BodyID is the reserved id of the embodied part of a composite.
const BodyID = "body"

var (
	_ Embodied = &Body{}
	_ Actuated = &Body{}
)

// Body is an embodied entity: a pose, a bounding box, a movability flag and
// a set of anchors. It is used on its own or as the "body" part of a
// composite. Pose access is guarded so engines stepping in parallel can share
// a static body.
type Body struct {
	BaseEntity
	mu          sync.RWMutex
	initial     Pose
	pose        Pose
	movable     bool
	halfExtents Vector3
	velocity    Vector3

	engines    []PhysicsEngine
	membership mask.Mask

	store   *AnchorStore
	anchors []*Anchor
	logger  Logger
}

func NewBody(scope Scope) *Body {
	logger := scope.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	return &Body{
		BaseEntity: NewBaseEntity("body"),
		store:      scope.Anchors,
		logger:     logger,
	}
}

// Init reads cfg.Body; a missing body section yields a static point body at
// the origin.
func (b *Body) Init(cfg EntityConfig) error {
	if err := b.BaseEntity.Init(cfg); err != nil {
		return err
	}
	bc := BodyConfig{}
	if cfg.Body != nil {
		bc = *cfg.Body
	}
	if !(Vector3{}).LessOrEqual(bc.Size) {
		return ConfigurationError{Subject: "body " + cfg.ID, Reason: "negative size"}
	}
	b.initial = NewPose(bc.Position, OrientationFromDegrees(bc.Orientation))
	b.pose = b.initial
	b.movable = bc.Movable
	b.halfExtents = bc.Size.Scale(0.5)

	if b.store != nil {
		anchors := append([]AnchorConfig{{Name: OriginAnchor}}, bc.Anchors...)
		for _, ac := range anchors {
			if err := b.addAnchor(ac); err != nil {
				// A failed body is never attached, so nothing else would free these.
				if relErr := b.releaseAnchors(); relErr != nil {
					return errors.Join(err, relErr)
				}
				return err
			}
		}
	}
	b.SetCapability(EmbodiedCapability(b))
	return nil
}

func (b *Body) releaseAnchors() error {
	if len(b.anchors) == 0 {
		return nil
	}
	ids := make([]table.EntryID, len(b.anchors))
	for i, a := range b.anchors {
		ids[i] = a.id
	}
	b.anchors = nil
	return b.store.release(ids...)
}

func (b *Body) addAnchor(ac AnchorConfig) error {
	if ac.Name == "" {
		return ConfigurationError{Subject: "body " + b.id, Reason: "anchor without a name"}
	}
	for _, a := range b.anchors {
		if a.name == ac.Name {
			return ConfigurationError{Subject: "body " + b.id, Reason: "duplicate anchor " + ac.Name}
		}
	}
	id, err := b.store.allocate(NewPose(ac.Position, OrientationFromDegrees(ac.Orientation)))
	if err != nil {
		return err
	}
	a := &Anchor{name: ac.Name, body: b, id: id, store: b.store}
	b.anchors = append(b.anchors, a)
	return a.update(b.pose)
}

func (b *Body) Anchor(name string) (*Anchor, error) {
	for _, a := range b.anchors {
		if a.name == name {
			return a, nil
		}
	}
	return nil, UnknownAnchorError{Anchor: name, Entity: FullID(b)}
}

func (b *Body) Anchors() []*Anchor {
	return b.anchors
}

func (b *Body) Position() Vector3 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pose.Position
}

func (b *Body) Orientation() Quaternion {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pose.Orientation
}

func (b *Body) Pose() Pose {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pose
}

func (b *Body) MoveTo(position Vector3, orientation Quaternion) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pose = NewPose(position, orientation)
	for _, a := range b.anchors {
		if err := a.update(b.pose); err != nil {
			b.logger.Error("anchor update failed", "entity", FullID(b), "anchor", a.name, "error", err)
		}
	}
}

func (b *Body) Movable() bool {
	return b.movable
}

// BoundingBox ignores orientation.
func (b *Body) BoundingBox() AABB {
	p := b.Position()
	return AABB{Min: p.Sub(b.halfExtents), Max: p.Add(b.halfExtents)}
}

func (b *Body) Velocity() Vector3 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.velocity
}

func (b *Body) SetVelocity(v Vector3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.velocity = v
}

func (b *Body) CollidingWithSomething() bool {
	for _, e := range b.engines {
		if e.Colliding(b) {
			return true
		}
	}
	return false
}

func (b *Body) SetEngines(engines []PhysicsEngine, membership mask.Mask) {
	b.engines = engines
	b.membership = membership
}

func (b *Body) Engines() mask.Mask {
	return b.membership
}

func (b *Body) Reset() {
	b.SetVelocity(Vector3{})
	b.MoveTo(b.initial.Position, b.initial.Orientation)
}

func (b *Body) Destroy() {
	if err := b.releaseAnchors(); err != nil {
		b.logger.Error("anchor release failed", "entity", FullID(b), "error", err)
	}
	b.BaseEntity.Destroy()
}
