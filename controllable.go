package space

// ControllerID is the reserved id of the controller part of a composite.
const ControllerID = "controller"

var _ Controllable = &ControllableEntity{}

type ControllableEntity struct {
	BaseEntity
	controller Controller
}

func NewControllableEntity(controller Controller) *ControllableEntity {
	return &ControllableEntity{
		BaseEntity: NewBaseEntity("controller"),
		controller: controller,
	}
}

// Init hands cfg.Params to a ConfigurableController.
func (c *ControllableEntity) Init(cfg EntityConfig) error {
	if err := c.BaseEntity.Init(cfg); err != nil {
		return err
	}
	if cc, ok := c.controller.(ConfigurableController); ok {
		if err := cc.Configure(cfg.Params); err != nil {
			return ConfigurationError{Subject: "controller params", Reason: err.Error()}
		}
	}
	return nil
}

func (c *ControllableEntity) Controller() Controller {
	return c.controller
}

func (c *ControllableEntity) Act() {
	if c.enabled {
		c.controller.Act(Root(c))
	}
}

func (c *ControllableEntity) SenseStep() {
	if c.enabled {
		c.controller.SenseStep(Root(c))
	}
}
