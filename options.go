package space

// Option configures a Space built by Factory.NewSpace.
type Option func(*options)

type options struct {
	engines  []PhysicsEngine
	media    []Medium
	loop     LoopFunctions
	logger   Logger
	seed     uint64
	catalog  Catalog
	parallel bool
}

func defaultOptions() options {
	return options{
		loop:   HookFuncs{},
		logger: NopLogger{},
	}
}

func WithEngines(engines ...PhysicsEngine) Option {
	return func(o *options) {
		o.engines = append(o.engines, engines...)
	}
}

func WithMedia(media ...Medium) Option {
	return func(o *options) {
		o.media = append(o.media, media...)
	}
}

func WithLoopFunctions(loop LoopFunctions) Option {
	return func(o *options) {
		o.loop = loop
	}
}

func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSeed seeds the random source shared by all generators of the space.
// The default seed is 0, so runs are reproducible unless told otherwise.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithCatalog replaces the default entity catalog.
func WithCatalog(c Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithParallelPhysics steps the engines concurrently in the physics phase.
func WithParallelPhysics() Option {
	return func(o *options) {
		o.parallel = true
	}
}

// HookFuncs adapts plain functions to LoopFunctions. Nil hooks are skipped.
type HookFuncs struct {
	Pre  func()
	Post func()
}

func (h HookFuncs) PreStep() {
	if h.Pre != nil {
		h.Pre()
	}
}

func (h HookFuncs) PostStep() {
	if h.Post != nil {
		h.Post()
	}
}
