package space

import (
	"fmt"
	"strconv"
)

// Distributor places a batch of entities of one type with independent position
// and orientation generators, retrying every entity that lands in a collision.
type Distributor struct {
	space       *Space
	cfg         DistributeConfig
	position    Generator
	orientation Generator
}

func newDistributor(s *Space, cfg DistributeConfig) (*Distributor, error) {
	if cfg.Entity.Type == "" {
		return nil, ConfigurationError{Subject: "distribute", Reason: "no entity to distribute specified"}
	}
	if cfg.Entity.ID == "" {
		return nil, ConfigurationError{Subject: "distribute", Reason: "missing entity base id"}
	}
	if cfg.Quantity < 0 || cfg.MaxTrials < 0 {
		return nil, ConfigurationError{Subject: "distribute", Reason: "quantity and max_trials must not be negative"}
	}
	position, err := NewGenerator(cfg.Position, s.rng)
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	orientation, err := NewGenerator(cfg.Orientation, s.rng)
	if err != nil {
		return nil, fmt.Errorf("orientation: %w", err)
	}
	return &Distributor{space: s, cfg: cfg, position: position, orientation: orientation}, nil
}

// Run places the entities one after the other. The first entity that cannot
// be placed aborts the batch; the count of placed entities is returned either
// way.
func (d *Distributor) Run() (int, error) {
	d.space.logger.Info("distributing entities",
		"type", d.cfg.Entity.Type, "base_id", d.cfg.Entity.ID, "quantity", d.cfg.Quantity)
	for i := 0; i < d.cfg.Quantity; i++ {
		if err := d.place(i); err != nil {
			d.space.logger.Error("distribution failed", "base_id", d.cfg.Entity.ID, "placed", i, "error", err)
			return i, DistributionError{BaseID: d.cfg.Entity.ID, Index: i, Err: err}
		}
	}
	return d.cfg.Quantity, nil
}

// place runs the attempt loop for entity i. Every attempt builds the entity
// from scratch.
func (d *Distributor) place(i int) error {
	cfg := d.cfg.Entity.Clone()
	cfg.ID = d.cfg.Entity.ID + strconv.FormatUint(uint64(i)+d.cfg.BaseNum, 10)
	if cfg.Body == nil {
		cfg.Body = &BodyConfig{}
	}

	retry := false
	for trials := 0; ; {
		e, err := d.space.catalog.New(cfg.Type, d.space.Scope())
		if err != nil {
			return err
		}
		if err := d.pose(cfg.Body, retry); err != nil {
			e.Destroy()
			return err
		}
		if err := e.Init(cfg); err != nil {
			e.Destroy()
			return fmt.Errorf("failed to initialize %q: %w", cfg.ID, err)
		}

		capability := e.Capability()
		switch capability.Kind() {
		case KindNeither:
			e.Destroy()
			return NotPlaceableError{Type: cfg.Type}
		case KindPositional:
			if err := d.space.AddEntity(e); err != nil {
				e.Destroy()
				return err
			}
			return nil
		}

		if err := d.space.AddEntity(e); err != nil {
			e.Destroy()
			return err
		}
		body, _ := capability.Embodied()
		if !body.CollidingWithSomething() {
			return nil
		}
		if err := d.space.RemoveEntity(e); err != nil {
			return err
		}
		retry = true
		trials++
		d.space.logger.Debug("placement collided", "entity", cfg.ID, "trial", trials)
		if trials > d.cfg.MaxTrials {
			return PlacementExhaustedError{
				Type:   cfg.Type,
				BaseID: d.cfg.Entity.ID,
				Placed: i,
				Trials: d.cfg.MaxTrials,
			}
		}
	}
}

func (d *Distributor) pose(body *BodyConfig, retry bool) error {
	position, err := d.position.Generate(retry)
	if err != nil {
		return fmt.Errorf("position: %w", err)
	}
	orientation, err := d.orientation.Generate(retry)
	if err != nil {
		return fmt.Errorf("orientation: %w", err)
	}
	body.Position = position
	body.Orientation = orientation
	return nil
}
