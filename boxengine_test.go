package space

import (
	"errors"
	"testing"
)

func newTestBox(t *testing.T, id string, pos, size Vector3, movable bool) *Body {
	t.Helper()
	b := NewBody(Scope{})
	if err := b.Init(EntityConfig{ID: id, Body: &BodyConfig{Position: pos, Size: size, Movable: movable}}); err != nil {
		t.Fatalf("Failed to init body: %v", err)
	}
	return b
}

func TestBoxEngineMembership(t *testing.T) {
	e := Factory.NewBoxEngine("box", AABB{Max: Vector3{X: 10, Y: 10, Z: 10}})
	b := newTestBox(t, "b", Vector3{X: 1}, Vector3{X: 1, Y: 1, Z: 1}, false)

	if err := e.Add(b); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	var dup DuplicateIdentityError
	if err := e.Add(b); !errors.As(err, &dup) {
		t.Errorf("Second Add() error = %v, want DuplicateIdentityError", err)
	}

	group := newTestEntity(t, "group")
	var cfgErr ConfigurationError
	if err := e.Add(group); !errors.As(err, &cfgErr) {
		t.Errorf("Add(no body) error = %v, want ConfigurationError", err)
	}

	if err := e.Remove(b); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	var unknown UnknownEntityError
	if err := e.Remove(b); !errors.As(err, &unknown) {
		t.Errorf("Second Remove() error = %v, want UnknownEntityError", err)
	}
	if len(e.Entities()) != 0 {
		t.Errorf("Engine houses %d entities, want 0", len(e.Entities()))
	}
}

func TestBoxEngineColliding(t *testing.T) {
	unit := Vector3{X: 1, Y: 1, Z: 1}
	tests := []struct {
		name  string
		other Vector3
		want  bool
	}{
		{"Overlapping", Vector3{X: 0.5}, true},
		{"Touching faces", Vector3{X: 1}, false},
		{"Apart", Vector3{X: 3}, false},
		{"Same place", Vector3{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Factory.NewBoxEngine("box", AABB{Min: Vector3{X: -5, Y: -5, Z: -5}, Max: Vector3{X: 5, Y: 5, Z: 5}})
			a := newTestBox(t, "a", Vector3{}, unit, false)
			b := newTestBox(t, "b", tt.other, unit, false)
			for _, body := range []*Body{a, b} {
				if err := e.Add(body); err != nil {
					t.Fatalf("Add() error = %v", err)
				}
			}
			if got := e.Colliding(a); got != tt.want {
				t.Errorf("Colliding() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxEngineUpdate(t *testing.T) {
	unit := Vector3{X: 1, Y: 1, Z: 1}
	region := AABB{Min: Vector3{X: -5, Y: -5, Z: -5}, Max: Vector3{X: 5, Y: 5, Z: 5}}
	tests := []struct {
		name     string
		start    Vector3
		velocity Vector3
		movable  bool
		want     Vector3
	}{
		{"Moves by velocity times step", Vector3{X: -2}, Vector3{X: 2}, true, Vector3{X: -1.8}},
		{"Static bodies never move", Vector3{X: -2}, Vector3{X: 2}, false, Vector3{X: -2}},
		{"Zero velocity", Vector3{X: 1}, Vector3{}, true, Vector3{X: 1}},
		{"Leaving the region is refused", Vector3{X: 4.95}, Vector3{X: 1}, true, Vector3{X: 4.95}},
		{"Running into the wall is refused", Vector3{Y: -0.65}, Vector3{Y: 1}, true, Vector3{Y: -0.65}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Factory.NewBoxEngine("box", region)
			wall := newTestBox(t, "wall", Vector3{}, Vector3{X: 0.2, Y: 0.2, Z: 0.2}, false)
			body := newTestBox(t, "mover", tt.start, unit, tt.movable)
			body.SetVelocity(tt.velocity)
			for _, b := range []*Body{wall, body} {
				if err := e.Add(b); err != nil {
					t.Fatalf("Add() error = %v", err)
				}
			}

			if err := e.Update(); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if !near(body.Position(), tt.want) {
				t.Errorf("Position = %v, want %v", body.Position(), tt.want)
			}
			if e.Steps() != 1 {
				t.Errorf("Steps() = %d, want 1", e.Steps())
			}
		})
	}
}
