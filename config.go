package space

import "maps"

// Generation methods understood by NewGenerator.
const (
	MethodConstant = "constant"
	MethodUniform  = "uniform"
	MethodGaussian = "gaussian"
	MethodGrid     = "grid"
)

// ArenaConfig declares the arena and what to put in it. Direct entities are
// added before any distribution runs.
type ArenaConfig struct {
	// Center defaults to the origin.
	Center        *Vector3
	Size          Vector3
	Entities      []EntityConfig
	Distributions []DistributeConfig
}

type EntityConfig struct {
	Type   string
	ID     string
	Body   *BodyConfig
	Tags   []TagConfig
	// Params are handed to the controller of a composite, see
	// ConfigurableController.
	Params map[string]any
}

// Clone deep copies the config so distributed instances never share state.
func (c EntityConfig) Clone() EntityConfig {
	out := c
	if c.Body != nil {
		body := *c.Body
		body.Anchors = append([]AnchorConfig(nil), c.Body.Anchors...)
		out.Body = &body
	}
	out.Tags = append([]TagConfig(nil), c.Tags...)
	if c.Params != nil {
		out.Params = maps.Clone(c.Params)
	}
	return out
}

// BodyConfig is the embodied part of an entity. Orientation holds (Z, Y, X)
// Euler angles in degrees.
type BodyConfig struct {
	Position    Vector3
	Orientation Vector3
	Movable     bool
	// Size is the full extent of the bounding box. Zero means a point body.
	Size    Vector3
	Anchors []AnchorConfig
}

// AnchorConfig places a named frame relative to the body origin.
type AnchorConfig struct {
	Name        string
	Position    Vector3
	Orientation Vector3
}

type TagConfig struct {
	ID          string
	Anchor      string
	Position    Vector3
	Orientation Vector3
	Payload     string
}

// GeneratorConfig selects a generation method and its parameters:
//
//	constant: Values
//	uniform:  Min, Max
//	gaussian: Mean, StdDev
//	grid:     Center, Distances, Layout
type GeneratorConfig struct {
	Method    string
	Values    Vector3
	Min       Vector3
	Max       Vector3
	Mean      Vector3
	StdDev    Vector3
	Center    Vector3
	Distances Vector3
	Layout    [3]int
}

type DistributeConfig struct {
	Position    GeneratorConfig
	Orientation GeneratorConfig
	// Entity is the template. Its ID is the base id of every placed instance.
	Entity    EntityConfig
	Quantity  int
	MaxTrials int
	BaseNum   uint64
}
