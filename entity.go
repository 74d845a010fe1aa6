package space

import (
	"iter"
	"strings"
)

var _ Entity = &BaseEntity{}

// BaseEntity implements the tree plumbing shared by every entity type. Concrete
// types embed it and call Init from their own Init.
type BaseEntity struct {
	id         string
	typ        string
	parent     Entity
	children   []Entity
	enabled    bool
	capability Capability
}

func NewBaseEntity(typ string) BaseEntity {
	return BaseEntity{typ: typ}
}

func (e *BaseEntity) ID() string {
	return e.id
}

func (e *BaseEntity) Type() string {
	return e.typ
}

func (e *BaseEntity) setType(typ string) {
	e.typ = typ
}

func (e *BaseEntity) Parent() Entity {
	return e.parent
}

func (e *BaseEntity) Children() []Entity {
	return e.children
}

func (e *BaseEntity) Child(id string) (Entity, bool) {
	for _, c := range e.children {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

func (e *BaseEntity) SetParent(parent Entity) error {
	if e.parent != nil {
		return EntityRelationError{e.id, e.parent.ID()}
	}
	e.parent = parent
	return nil
}

func (e *BaseEntity) AppendChild(child Entity) error {
	if _, taken := e.Child(child.ID()); taken {
		return DuplicateIdentityError{ID: e.id + "." + child.ID()}
	}
	e.children = append(e.children, child)
	return nil
}

func (e *BaseEntity) Init(cfg EntityConfig) error {
	if cfg.ID == "" {
		return ConfigurationError{Subject: "entity of type " + e.typ, Reason: "missing id"}
	}
	// "." joins full ids and "/" would split them for FindByPattern.
	if strings.ContainsAny(cfg.ID, "./") {
		return ConfigurationError{Subject: "entity " + cfg.ID, Reason: `id contains "." or "/"`}
	}
	e.id = cfg.ID
	e.enabled = true
	return nil
}

func (e *BaseEntity) Reset() {}

func (e *BaseEntity) Destroy() {
	for _, c := range e.children {
		c.Destroy()
	}
}

func (e *BaseEntity) Enabled() bool {
	return e.enabled
}

func (e *BaseEntity) Enable() {
	e.enabled = true
}

func (e *BaseEntity) Disable() {
	e.enabled = false
}

func (e *BaseEntity) Capability() Capability {
	return e.capability
}

func (e *BaseEntity) SetCapability(c Capability) {
	e.capability = c
}

// Attach makes child a part of parent. The child must be initialized, so that
// its id is known, and must not have a parent yet.
func Attach(parent, child Entity) error {
	if p := child.Parent(); p != nil {
		return EntityRelationError{child.ID(), p.ID()}
	}
	if err := parent.AppendChild(child); err != nil {
		return err
	}
	return child.SetParent(parent)
}

// Root walks up to the top-most ancestor of e.
func Root(e Entity) Entity {
	for e.Parent() != nil {
		e = e.Parent()
	}
	return e
}

// FullID joins the ids of e and its ancestors with dots, root first.
func FullID(e Entity) string {
	parts := []string{e.ID()}
	for p := e.Parent(); p != nil; p = p.Parent() {
		parts = append(parts, p.ID())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Walk visits e and its descendants, parents before children.
func Walk(e Entity) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		walk(e, yield)
	}
}

func walk(e Entity, yield func(Entity) bool) bool {
	if !yield(e) {
		return false
	}
	for _, c := range e.Children() {
		if !walk(c, yield) {
			return false
		}
	}
	return true
}
