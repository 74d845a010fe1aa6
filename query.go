package space

import (
	"github.com/TheBitDrifter/mask"
)

// Trait is a queryable property of an entity.
type Trait uint32

const (
	TraitRoot Trait = iota
	TraitEnabled
	TraitPositional
	TraitEmbodied
	TraitMovable
	TraitControllable
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

// traitsOf computes the trait mask of e from its stored capability.
func traitsOf(e Entity) mask.Mask {
	var m mask.Mask
	if e.Parent() == nil {
		m.Mark(uint32(TraitRoot))
	}
	if e.Enabled() {
		m.Mark(uint32(TraitEnabled))
	}
	c := e.Capability()
	if _, ok := c.Positional(); ok {
		m.Mark(uint32(TraitPositional))
	}
	if body, ok := c.Embodied(); ok {
		m.Mark(uint32(TraitEmbodied))
		if body.Movable() {
			m.Mark(uint32(TraitMovable))
		}
	}
	if _, ok := e.(Controllable); ok {
		m.Mark(uint32(TraitControllable))
	}
	return m
}

func traitMask(traits []Trait) mask.Mask {
	var m mask.Mask
	for _, t := range traits {
		m.Mark(uint32(t))
	}
	return m
}

type compositeNode struct {
	op       Operation
	children []QueryNode
	traits   []Trait
}

type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

func newCompositeNode(op Operation, traits []Trait) *compositeNode {
	return &compositeNode{
		op:       op,
		children: make([]QueryNode, 0),
		traits:   traits,
	}
}

func (n *compositeNode) Evaluate(e Entity) bool {
	nodeMask := traitMask(n.traits)
	entityMask := traitsOf(e)

	switch n.op {
	case OpAnd:
		if !entityMask.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(e) {
				return false
			}
		}
		return true

	case OpOr:
		if entityMask.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(e) {
				return true
			}
		}
		return false

	case OpNot:
		for _, child := range n.children {
			if child.Evaluate(e) {
				return false
			}
		}
		return entityMask.ContainsNone(nodeMask)
	}
	return false
}

func (q *query) And(items ...interface{}) QueryNode {
	return q.node(OpAnd, items)
}

func (q *query) Or(items ...interface{}) QueryNode {
	return q.node(OpOr, items)
}

func (q *query) Not(items ...interface{}) QueryNode {
	return q.node(OpNot, items)
}

func (q *query) node(op Operation, items []interface{}) QueryNode {
	traits, children := q.processItems(items...)
	node := newCompositeNode(op, traits)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) processItems(items ...interface{}) ([]Trait, []QueryNode) {
	traits := make([]Trait, 0)
	children := make([]QueryNode, 0)

	for _, item := range items {
		switch v := item.(type) {
		case Trait:
			traits = append(traits, v)
		case []Trait:
			traits = append(traits, v...)
		case QueryNode:
			children = append(children, v)
		}
	}

	return traits, children
}

func (q *query) Evaluate(e Entity) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(e)
}
