// Profiling:
// go build ./cmd/spacerun
// ./spacerun -profile cpu -ticks 5000
// go tool pprof -http=":8000" ./spacerun cpu.pprof

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/space"
	"github.com/pkg/profile"
)

// wanderer drives a robot at constant speed and turns it whenever it stops
// making progress.
type wanderer struct {
	rng     *rand.Rand
	medium  *space.TagMedium
	speed   float64
	heading float64
	last    space.Vector3
	seen    int
}

// Configure reads an optional "speed" param.
func (w *wanderer) Configure(params map[string]any) error {
	v, ok := params["speed"]
	if !ok {
		return nil
	}
	speed, ok := v.(float64)
	if !ok || speed < 0 {
		return fmt.Errorf("speed must be a non-negative number, got %v", v)
	}
	w.speed = speed
	return nil
}

func (w *wanderer) Act(robot space.Entity) {
	body := robot.(*space.Composite).Body()
	if body.Position() == w.last {
		w.heading = w.rng.Float64() * 2 * math.Pi
	}
	w.last = body.Position()
	body.SetVelocity(space.Vector3{X: math.Cos(w.heading) * w.speed, Y: math.Sin(w.heading) * w.speed})
}

func (w *wanderer) SenseStep(robot space.Entity) {
	w.seen = 0
	for _, r := range w.medium.Readings() {
		if r.Payload == "box" {
			w.seen++
		}
	}
}

// runConfig collects the command line.
type runConfig struct {
	ticks    int
	seed     uint64
	robots   int
	speed    float64
	parallel bool
	level    slog.Level
}

func main() {
	var (
		ticks    = flag.Int("ticks", 1000, "number of steps to run")
		seed     = flag.Uint64("seed", 1, "random seed")
		robots   = flag.Int("robots", 40, "robots to distribute")
		speed    = flag.Float64("speed", 0.3, "robot speed in m/s")
		parallel = flag.Bool("parallel", false, "step physics engines concurrently")
		mode     = flag.String("profile", "", "cpu, mem or empty")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	cfg := runConfig{
		ticks:    *ticks,
		seed:     *seed,
		robots:   *robots,
		speed:    *speed,
		parallel: *parallel,
		level:    bark.LevelInfo,
	}
	if *verbose {
		cfg.level = bark.LevelDebug
	}
	bark.Wake(bark.Config{Environment: "development", Level: cfg.level})
	log := bark.For("spacerun")

	if err := run(log, cfg); err != nil {
		log.Error("run failed", bark.KeyError, err)
		if trace, ok := bark.GetTrace(err); ok {
			for _, f := range trace.Frames {
				log.Debug("trace", "frame", f.String())
			}
		}
		os.Exit(1)
	}
}

// run builds the arena and steps it. The space logs through its own buffered
// logger, flushed once per step; the command itself logs through bark.
func run(log *slog.Logger, cfg runConfig) error {
	logger := space.NewSlogLogger(os.Stderr, cfg.level)
	tags := space.Factory.NewTagMedium("tags")

	// Two halves sharing the x = 0 plane: the boxes placed on it belong to both.
	west := space.Factory.NewBoxEngine("west", space.AABB{
		Min: space.Vector3{X: -10, Y: -10, Z: 0},
		Max: space.Vector3{X: 0, Y: 10, Z: 2},
	})
	east := space.Factory.NewBoxEngine("east", space.AABB{
		Min: space.Vector3{X: 0, Y: -10, Z: 0},
		Max: space.Vector3{X: 10, Y: 10, Z: 2},
	})

	opts := []space.Option{
		space.WithEngines(west, east),
		space.WithMedia(tags),
		space.WithLogger(logger),
		space.WithSeed(cfg.seed),
	}
	if cfg.parallel {
		opts = append(opts, space.WithParallelPhysics())
	}
	sp, err := space.Factory.NewSpace(opts...)
	if err != nil {
		return err
	}
	ctrlRng := rand.New(rand.NewPCG(cfg.seed, cfg.seed+1))
	err = sp.Catalog().Register("robot", func(s space.Scope) space.Entity {
		return space.NewComposite(s, space.WithController(func() space.Controller {
			return &wanderer{rng: ctrlRng, medium: tags, speed: 0.3, heading: ctrlRng.Float64() * 2 * math.Pi}
		}))
	})
	if err != nil {
		return err
	}

	robotBody := &space.BodyConfig{
		Movable: true,
		Size:    space.Vector3{X: 0.2, Y: 0.2, Z: 0.1},
		Anchors: []space.AnchorConfig{{Name: "top", Position: space.Vector3{Z: 0.1}}},
	}
	err = sp.Init(space.ArenaConfig{
		Size: space.Vector3{X: 20, Y: 20, Z: 2},
		Distributions: []space.DistributeConfig{
			{
				// A static wall of boxes straddling both engines.
				Position: space.GeneratorConfig{
					Method:    space.MethodGrid,
					Center:    space.Vector3{Z: 0.25},
					Layout:    [3]int{1, 8, 1},
					Distances: space.Vector3{Y: 2},
				},
				Orientation: space.GeneratorConfig{Method: space.MethodConstant},
				Entity: space.EntityConfig{
					Type: "composite",
					ID:   "box",
					Body: &space.BodyConfig{
						Size:    space.Vector3{X: 0.5, Y: 0.5, Z: 0.5},
						Anchors: []space.AnchorConfig{{Name: "top", Position: space.Vector3{Z: 0.25}}},
					},
					Tags: []space.TagConfig{{ID: "fiducial", Anchor: "top", Payload: "box"}},
				},
				Quantity:  8,
				MaxTrials: 0,
			},
			{
				Position: space.GeneratorConfig{
					Method: space.MethodUniform,
					Min:    space.Vector3{X: -9, Y: -9, Z: 0.05},
					Max:    space.Vector3{X: 9, Y: 9, Z: 0.05},
				},
				Orientation: space.GeneratorConfig{
					Method: space.MethodUniform,
					Max:    space.Vector3{X: 360},
				},
				Entity: space.EntityConfig{
					Type: "robot",
					ID:   "bot",
					Body: robotBody,
					Tags:   []space.TagConfig{{ID: "led", Anchor: "top", Payload: "robot"}},
					Params: map[string]any{"speed": cfg.speed},
				},
				Quantity:  cfg.robots,
				MaxTrials: 100,
			},
		},
	})
	if err != nil {
		var distErr space.DistributionError
		if errors.As(err, &distErr) {
			return bark.AddTrace(err)
		}
		return err
	}
	log.Info("arena ready", "entities", sp.Registry().Len(), "seed", cfg.seed, "parallel", cfg.parallel)

	for range cfg.ticks {
		if err := sp.Update(); err != nil {
			return bark.AddTrace(err)
		}
	}

	movable := sp.Registry().Query(space.Factory.NewQuery().And(space.TraitRoot, space.TraitMovable))
	count := 0
	for range movable {
		count++
	}
	log.Info("done",
		"clock", sp.Clock(),
		"movable", count,
		"shared", len(sp.SharedEntities()),
		"tags", len(tags.Readings()),
		"west", len(west.Entities()),
		"east", len(east.Entities()))
	if err := sp.Destroy(); err != nil {
		return err
	}
	return logger.Flush()
}
