package space

type factory struct{}

var Factory factory

func (f factory) NewSpace(opts ...Option) (*Space, error) {
	return newSpace(opts...)
}

func (f factory) NewRegistry() Registry {
	return newRegistry()
}

func (f factory) NewQuery() Query {
	return newQuery()
}

// NewCatalog returns an empty catalog; NewDefaultCatalog one that knows the
// built-in types.
func (f factory) NewCatalog() Catalog {
	return newCatalog()
}

func (f factory) NewDefaultCatalog() Catalog {
	return defaultCatalog()
}

func (f factory) NewDispatcher(logger Logger, engines ...PhysicsEngine) (*Dispatcher, error) {
	return newDispatcher(logger, engines...)
}

func (f factory) NewAnchorStore() (*AnchorStore, error) {
	return newAnchorStore()
}

func (f factory) NewBoxEngine(id string, region AABB) *BoxEngine {
	return newBoxEngine(id, region)
}

func (f factory) NewTagMedium(id string) *TagMedium {
	return NewTagMedium(id)
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
