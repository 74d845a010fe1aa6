package space

import "fmt"

// CompositeOption customizes the parts a Composite builds on Init.
type CompositeOption func(*Composite)

// WithController adds a "controller" part driven by a fresh controller from
// newController.
func WithController(newController func() Controller) CompositeOption {
	return func(c *Composite) {
		c.newController = newController
	}
}

// Composite is a robot-like entity assembled from parts: a "body", an optional
// "controller" and an optional "tags" part when tags are declared. Its
// capability is the one of its body.
type Composite struct {
	BaseEntity
	scope         Scope
	newController func() Controller
	body          *Body
}

func NewComposite(scope Scope, opts ...CompositeOption) *Composite {
	c := &Composite{
		BaseEntity: NewBaseEntity("composite"),
		scope:      scope,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Composite) Init(cfg EntityConfig) error {
	if err := c.BaseEntity.Init(cfg); err != nil {
		return err
	}
	body := NewBody(c.scope)
	if err := c.part(body, EntityConfig{Type: "body", ID: BodyID, Body: cfg.Body}); err != nil {
		return err
	}
	c.body = body
	c.SetCapability(EmbodiedCapability(body))

	if c.newController != nil {
		ctrl := NewControllableEntity(c.newController())
		if err := c.part(ctrl, EntityConfig{Type: "controller", ID: ControllerID, Params: cfg.Params}); err != nil {
			return err
		}
	}
	if len(cfg.Tags) > 0 {
		tags := NewTagEquipped(c.scope)
		// Tags resolve their anchors on the body, so they are attached before Init.
		if err := tags.SetParent(c); err != nil {
			return err
		}
		if err := tags.Init(EntityConfig{Type: "tags", ID: TagsID, Tags: cfg.Tags}); err != nil {
			return fmt.Errorf("failed to initialize tags of %q: %w", cfg.ID, err)
		}
		if err := c.AppendChild(tags); err != nil {
			return err
		}
	}
	return nil
}

func (c *Composite) part(e Entity, cfg EntityConfig) error {
	if err := e.Init(cfg); err != nil {
		return fmt.Errorf("failed to initialize %s of %q: %w", cfg.ID, c.id, err)
	}
	if err := Attach(c, e); err != nil {
		e.Destroy()
		return err
	}
	return nil
}

func (c *Composite) Body() *Body {
	return c.body
}

// Enable and Disable cascade to the parts, so anchors follow the composite.
func (c *Composite) Enable() {
	c.BaseEntity.Enable()
	for _, ch := range c.children {
		ch.Enable()
	}
}

func (c *Composite) Disable() {
	c.BaseEntity.Disable()
	for _, ch := range c.children {
		ch.Disable()
	}
}
