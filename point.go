package space

var _ Positional = &Point{}

// Point is a positional entity: it has a pose but no extent and never
// collides. Lights and landmarks are points.
type Point struct {
	BaseEntity
	initial Pose
	pose    Pose
}

func NewPoint(Scope) *Point {
	return &Point{BaseEntity: NewBaseEntity("point")}
}

func (p *Point) Init(cfg EntityConfig) error {
	if err := p.BaseEntity.Init(cfg); err != nil {
		return err
	}
	if cfg.Body != nil {
		p.initial = NewPose(cfg.Body.Position, OrientationFromDegrees(cfg.Body.Orientation))
	} else {
		p.initial = NewPose(Vector3{}, IdentityQuaternion)
	}
	p.pose = p.initial
	p.SetCapability(PositionalCapability(p))
	return nil
}

func (p *Point) Position() Vector3 {
	return p.pose.Position
}

func (p *Point) Orientation() Quaternion {
	return p.pose.Orientation
}

func (p *Point) MoveTo(position Vector3, orientation Quaternion) {
	p.pose = NewPose(position, orientation)
}

func (p *Point) Reset() {
	p.pose = p.initial
}
