package space

import (
	"fmt"
	"math/rand/v2"
)

var (
	_ Generator = ConstantGenerator{}
	_ Generator = &UniformGenerator{}
	_ Generator = &GaussianGenerator{}
	_ Generator = &GridGenerator{}
)

// NewGenerator builds the generator named by cfg.Method. Random generators
// draw from rng.
func NewGenerator(cfg GeneratorConfig, rng *rand.Rand) (Generator, error) {
	switch cfg.Method {
	case MethodConstant:
		return ConstantGenerator{Value: cfg.Values}, nil
	case MethodUniform:
		return NewUniformGenerator(cfg.Min, cfg.Max, rng)
	case MethodGaussian:
		return NewGaussianGenerator(cfg.Mean, cfg.StdDev, rng)
	case MethodGrid:
		return NewGridGenerator(cfg.Center, cfg.Layout, cfg.Distances)
	}
	return nil, ConfigurationError{Subject: "generator", Reason: fmt.Sprintf("unknown distribution method %q", cfg.Method)}
}

type ConstantGenerator struct {
	Value Vector3
}

func (g ConstantGenerator) Generate(bool) (Vector3, error) {
	return g.Value, nil
}

type UniformGenerator struct {
	min, max Vector3
	rng      *rand.Rand
}

func NewUniformGenerator(min, max Vector3, rng *rand.Rand) (*UniformGenerator, error) {
	if !min.LessOrEqual(max) {
		return nil, InvalidRangeError{Min: min, Max: max}
	}
	return &UniformGenerator{min: min, max: max, rng: rng}, nil
}

func (g *UniformGenerator) Generate(bool) (Vector3, error) {
	return Vector3{
		X: g.axis(g.min.X, g.max.X),
		Y: g.axis(g.min.Y, g.max.Y),
		Z: g.axis(g.min.Z, g.max.Z),
	}, nil
}

// axis returns max on a degenerate axis without consuming randomness.
func (g *UniformGenerator) axis(min, max float64) float64 {
	if max > min {
		return min + g.rng.Float64()*(max-min)
	}
	return max
}

type GaussianGenerator struct {
	mean, stdDev Vector3
	rng          *rand.Rand
}

func NewGaussianGenerator(mean, stdDev Vector3, rng *rand.Rand) (*GaussianGenerator, error) {
	if !(Vector3{}).LessOrEqual(stdDev) {
		return nil, ConfigurationError{Subject: "gaussian generator", Reason: "negative standard deviation " + stdDev.String()}
	}
	return &GaussianGenerator{mean: mean, stdDev: stdDev, rng: rng}, nil
}

func (g *GaussianGenerator) Generate(bool) (Vector3, error) {
	return Vector3{
		X: g.mean.X + g.rng.NormFloat64()*g.stdDev.X,
		Y: g.mean.Y + g.rng.NormFloat64()*g.stdDev.Y,
		Z: g.mean.Z + g.rng.NormFloat64()*g.stdDev.Z,
	}, nil
}

// GridGenerator walks a regular lattice centered on center, X fastest, then
// Y, then Z. It has no freedom to pick another cell, so it refuses retries.
type GridGenerator struct {
	center    Vector3
	layout    [3]int
	distances Vector3
	placed    int
}

func NewGridGenerator(center Vector3, layout [3]int, distances Vector3) (*GridGenerator, error) {
	if layout[0] <= 0 || layout[1] <= 0 || layout[2] <= 0 {
		return nil, InvalidLayoutError{Layout: layout}
	}
	return &GridGenerator{center: center, layout: layout, distances: distances}, nil
}

func (g *GridGenerator) Capacity() int {
	return g.layout[0] * g.layout[1] * g.layout[2]
}

func (g *GridGenerator) Generate(retry bool) (Vector3, error) {
	if retry {
		return Vector3{}, GridRetryUnsupportedError{Placed: g.placed}
	}
	if g.placed >= g.Capacity() {
		return Vector3{}, GridExhaustedError{Capacity: g.Capacity()}
	}
	nx, ny, nz := g.layout[0], g.layout[1], g.layout[2]
	k := g.placed
	out := Vector3{
		X: g.center.X + (float64(nx-1)*0.5-float64(k%nx))*g.distances.X,
		Y: g.center.Y + (float64(ny-1)*0.5-float64((k/nx)%ny))*g.distances.Y,
		Z: g.center.Z + (float64(nz-1)*0.5-float64(k/(nx*ny)))*g.distances.Z,
	}
	g.placed++
	return out, nil
}
