package space

import "fmt"

// MaxEntityTypes bounds the number of entity types a catalog accepts.
const MaxEntityTypes = 256

var _ Catalog = &catalog{}

// typeTagged is satisfied by every type embedding BaseEntity.
type typeTagged interface {
	setType(string)
}

// catalog maps type tags to constructors.
type catalog struct {
	constructors *SimpleCache[Constructor]
}

func newCatalog() *catalog {
	return &catalog{
		constructors: &SimpleCache[Constructor]{
			itemIndices: make(map[string]int),
			maxCapacity: MaxEntityTypes,
		},
	}
}

// defaultCatalog knows the entity types provided by this package.
func defaultCatalog() *catalog {
	c := newCatalog()
	_ = c.Register("body", func(s Scope) Entity { return NewBody(s) })
	_ = c.Register("point", func(s Scope) Entity { return NewPoint(s) })
	_ = c.Register("composite", func(s Scope) Entity { return NewComposite(s) })
	return c
}

func (c *catalog) Register(typ string, constructor Constructor) error {
	if typ == "" || constructor == nil {
		return ConfigurationError{Subject: "entity catalog", Reason: "empty type or nil constructor"}
	}
	if _, err := c.constructors.Register(typ, constructor); err != nil {
		return ConfigurationError{Subject: "entity type " + typ, Reason: err.Error()}
	}
	return nil
}

func (c *catalog) New(typ string, scope Scope) (Entity, error) {
	idx, ok := c.constructors.GetIndex(typ)
	if !ok {
		return nil, UnknownTypeError{Type: typ}
	}
	e := (*c.constructors.GetItem(idx))(scope)
	if e == nil {
		return nil, fmt.Errorf("constructor for %q returned no entity", typ)
	}
	if t, ok := e.(typeTagged); ok {
		t.setType(typ)
	}
	return e, nil
}

func (c *catalog) Types() []string {
	return c.constructors.Keys()
}
