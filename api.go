package space

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

// Entity is a node of the ownership tree. A composite owns its children; the
// parent link is a plain back reference.
type Entity interface {
	ID() string
	Type() string
	Parent() Entity
	Children() []Entity
	Child(id string) (Entity, bool)
	SetParent(parent Entity) error
	AppendChild(child Entity) error
	Init(EntityConfig) error
	Reset()
	Destroy()
	Enabled() bool
	Enable()
	Disable()
	Capability() Capability
}

type Positional interface {
	Entity
	Position() Vector3
	Orientation() Quaternion
	MoveTo(position Vector3, orientation Quaternion)
}

type Embodied interface {
	Positional
	Movable() bool
	BoundingBox() AABB
	CollidingWithSomething() bool
	Anchor(name string) (*Anchor, error)
	// SetEngines records the engines housing the entity's root and their
	// membership bits. Only the Dispatcher calls it.
	SetEngines(engines []PhysicsEngine, membership mask.Mask)
	Engines() mask.Mask
}

// Actuated is implemented by bodies carrying a commanded velocity.
type Actuated interface {
	Velocity() Vector3
	SetVelocity(Vector3)
}

type PhysicsEngine interface {
	ID() string
	Contains(point Vector3) bool
	Add(root Entity) error
	Remove(root Entity) error
	Colliding(body Embodied) bool
	Update() error
	Reset()
}

type Medium interface {
	ID() string
	Update()
	Reset()
}

// MediumMember is implemented by entities that join media when added to a space.
type MediumMember interface {
	JoinMedia(media []Medium)
	LeaveMedia()
}

type Controllable interface {
	Entity
	Act()
	SenseStep()
}

// Controller is the behavior code driven by a ControllableEntity. It receives
// the root of the robot it controls.
type Controller interface {
	Act(robot Entity)
	SenseStep(robot Entity)
}

// ConfigurableController is a Controller that reads the Params of the entity
// config it is built for.
type ConfigurableController interface {
	Controller
	Configure(params map[string]any) error
}

type LoopFunctions interface {
	PreStep()
	PostStep()
}

type Registry interface {
	Add(Entity) error
	Remove(Entity) error
	Entity(fullID string) (Entity, bool)
	Roots() []Entity
	Len() int
	FindByPattern(pattern string) (iter.Seq[Entity], error)
	EntitiesOfType(typ string) (map[string]Entity, error)
	Query(node QueryNode) iter.Seq[Entity]
	Reset()
	Locked() bool
	Lock()
	Unlock()
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(entity Entity) bool
}

// Constructor builds an uninitialized entity of one type.
type Constructor func(scope Scope) Entity

type Catalog interface {
	Register(typ string, constructor Constructor) error
	New(typ string, scope Scope) (Entity, error)
	Types() []string
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	Register(string, T) (int, error)
}

// Generator yields candidate positions or orientations. retry is true when the
// previous candidate collided.
type Generator interface {
	Generate(retry bool) (Vector3, error)
}

type Logger interface {
	Info(msg string, keyValues ...any)
	Error(msg string, keyValues ...any)
	Debug(msg string, keyValues ...any)
	Warn(msg string, keyValues ...any)
}

type Flusher interface {
	Flush() error
}

// Scope carries the per-space services entity constructors may need.
type Scope struct {
	Anchors *AnchorStore
	Logger  Logger
}

type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}
