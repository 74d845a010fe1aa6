package space

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestUniformGeneratorBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max Vector3
	}{
		{"Unit cube", Vector3{}, Vector3{X: 1, Y: 1, Z: 1}},
		{"Negative range", Vector3{X: -5, Y: -3, Z: -1}, Vector3{X: -1, Y: 3, Z: 0}},
		{"Degenerate axis", Vector3{X: 2, Y: 0, Z: 0.5}, Vector3{X: 2, Y: 4, Z: 0.5}},
		{"Point", Vector3{X: 1, Y: 1, Z: 1}, Vector3{X: 1, Y: 1, Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewUniformGenerator(tt.min, tt.max, testRand())
			if err != nil {
				t.Fatalf("NewUniformGenerator() error = %v", err)
			}
			for i := 0; i < 10000; i++ {
				v, err := g.Generate(i%2 == 1)
				if err != nil {
					t.Fatalf("Generate() error = %v", err)
				}
				if !tt.min.LessOrEqual(v) || !v.LessOrEqual(tt.max) {
					t.Fatalf("Draw %d = %v, outside [%v, %v]", i, v, tt.min, tt.max)
				}
			}
		})
	}
}

func TestUniformGeneratorDegenerateAxisReturnsMax(t *testing.T) {
	g, err := NewUniformGenerator(Vector3{X: 3, Y: 0}, Vector3{X: 3, Y: 1}, testRand())
	if err != nil {
		t.Fatalf("NewUniformGenerator() error = %v", err)
	}
	v, _ := g.Generate(false)
	if v.X != 3 || v.Z != 0 {
		t.Errorf("Degenerate axes = (%g, %g), want (3, 0)", v.X, v.Z)
	}
}

func TestUniformGeneratorInvalidRange(t *testing.T) {
	_, err := NewGenerator(GeneratorConfig{
		Method: MethodUniform,
		Min:    Vector3{X: 1, Y: 0, Z: 0},
		Max:    Vector3{X: 0, Y: 1, Z: 1},
	}, testRand())

	var rangeErr InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("NewGenerator() error = %v, want InvalidRangeError", err)
	}
	var cfgErr ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("InvalidRangeError does not unwrap to ConfigurationError")
	}
}

func TestConstantGeneratorIgnoresRetry(t *testing.T) {
	want := Vector3{X: 1, Y: 2, Z: 3}
	g, err := NewGenerator(GeneratorConfig{Method: MethodConstant, Values: want}, nil)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	for _, retry := range []bool{false, true, true} {
		got, err := g.Generate(retry)
		if err != nil || got != want {
			t.Errorf("Generate(%v) = %v, %v; want %v", retry, got, err, want)
		}
	}
}

func TestGaussianGenerator(t *testing.T) {
	t.Run("Zero deviation yields the mean", func(t *testing.T) {
		mean := Vector3{X: 1, Y: -2, Z: 3}
		g, err := NewGaussianGenerator(mean, Vector3{}, testRand())
		if err != nil {
			t.Fatalf("NewGaussianGenerator() error = %v", err)
		}
		got, _ := g.Generate(false)
		if got != mean {
			t.Errorf("Generate() = %v, want %v", got, mean)
		}
	})

	t.Run("Every call draws fresh values", func(t *testing.T) {
		g, err := NewGaussianGenerator(Vector3{}, Vector3{X: 1, Y: 1, Z: 1}, testRand())
		if err != nil {
			t.Fatalf("NewGaussianGenerator() error = %v", err)
		}
		first, _ := g.Generate(false)
		second, _ := g.Generate(false)
		retry, _ := g.Generate(true)
		if first == second || second == retry {
			t.Errorf("Consecutive draws repeat: %v, %v, %v", first, second, retry)
		}
	})

	t.Run("Sample mean converges", func(t *testing.T) {
		mean := Vector3{X: 5, Y: -5, Z: 0}
		g, _ := NewGaussianGenerator(mean, Vector3{X: 0.5, Y: 0.5, Z: 0.5}, testRand())
		var sum Vector3
		const n = 20000
		for i := 0; i < n; i++ {
			v, _ := g.Generate(false)
			sum = sum.Add(v)
		}
		if d := sum.Scale(1.0 / n).Sub(mean).Length(); d > 0.05 {
			t.Errorf("Sample mean is %v away from %v", d, mean)
		}
	})

	t.Run("Negative deviation is rejected", func(t *testing.T) {
		_, err := NewGaussianGenerator(Vector3{}, Vector3{X: -1}, testRand())
		var cfgErr ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("NewGaussianGenerator() error = %v, want ConfigurationError", err)
		}
	})
}

func TestGridGeneratorIsExhaustive(t *testing.T) {
	center := Vector3{X: 10, Y: 20, Z: 30}
	layout := [3]int{2, 3, 2}
	distances := Vector3{X: 1, Y: 2, Z: 3}
	g, err := NewGridGenerator(center, layout, distances)
	if err != nil {
		t.Fatalf("NewGridGenerator() error = %v", err)
	}

	capacity := 2 * 3 * 2
	seen := make(map[Vector3]struct{}, capacity)
	var sum Vector3
	for i := 0; i < capacity; i++ {
		v, err := g.Generate(false)
		if err != nil {
			t.Fatalf("Call %d: Generate() error = %v", i, err)
		}
		seen[v] = struct{}{}
		sum = sum.Add(v)
	}
	if len(seen) != capacity {
		t.Errorf("Grid produced %d distinct positions, want %d", len(seen), capacity)
	}
	if d := sum.Scale(1 / float64(capacity)).Sub(center).Length(); d > 1e-9 {
		t.Errorf("Lattice centroid is %g away from the center", d)
	}
	if _, ok := seen[Vector3{X: 10.5, Y: 22, Z: 31.5}]; !ok {
		t.Errorf("First cell (10.5, 22, 31.5) missing from lattice")
	}
	if _, ok := seen[Vector3{X: 9.5, Y: 18, Z: 28.5}]; !ok {
		t.Errorf("Last cell (9.5, 18, 28.5) missing from lattice")
	}

	_, err = g.Generate(false)
	var exhausted GridExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Call %d: error = %v, want GridExhaustedError", capacity+1, err)
	}
	if exhausted.Capacity != capacity {
		t.Errorf("Reported capacity %d, want %d", exhausted.Capacity, capacity)
	}
}

func TestGridGeneratorRejectsRetry(t *testing.T) {
	g, err := NewGridGenerator(Vector3{}, [3]int{3, 3, 1}, Vector3{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("NewGridGenerator() error = %v", err)
	}
	if _, err := g.Generate(false); err != nil {
		t.Fatalf("Generate(false) error = %v", err)
	}
	_, err = g.Generate(true)
	var retryErr GridRetryUnsupportedError
	if !errors.As(err, &retryErr) {
		t.Fatalf("Generate(true) error = %v, want GridRetryUnsupportedError", err)
	}
	if retryErr.Placed != 1 {
		t.Errorf("Placed = %d, want 1", retryErr.Placed)
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  GeneratorConfig
	}{
		{"Unknown method", GeneratorConfig{Method: "poisson"}},
		{"Empty method", GeneratorConfig{}},
		{"Zero layout", GeneratorConfig{Method: MethodGrid, Layout: [3]int{2, 0, 1}}},
		{"Negative layout", GeneratorConfig{Method: MethodGrid, Layout: [3]int{2, 2, -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.cfg, testRand())
			var cfgErr ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("NewGenerator() error = %v, want ConfigurationError", err)
			}
		})
	}
}

func TestOrientationFromDegrees(t *testing.T) {
	q := OrientationFromDegrees(Vector3{X: 90})
	got := q.Rotate(Vector3{X: 1})
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		t.Errorf("Rotating x by 90 degrees about z = %v, want (0, 1, 0)", got)
	}
}
