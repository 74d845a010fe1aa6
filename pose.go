package space

// Pose is a position plus a unit orientation.
type Pose struct {
	Position    Vector3
	Orientation Quaternion
}

// NewPose normalizes the orientation so the unit-length invariant holds.
func NewPose(position Vector3, orientation Quaternion) Pose {
	return Pose{Position: position, Orientation: orientation.Normalize()}
}

// Compose expresses local, given in p's frame, in the global frame.
func (p Pose) Compose(local Pose) Pose {
	return NewPose(
		p.Position.Add(p.Orientation.Rotate(local.Position)),
		p.Orientation.Mul(local.Orientation),
	)
}
