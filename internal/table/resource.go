package table

// Resource is a frontend-owned asset attached to an entity, such as a
// pre-rendered sprite. Release is called once when the entity is removed
// or the table is torn down.
type Resource interface {
	Release()
}

// ResourceFactory builds the graphical resources for the table's entities.
// A non-nil error aborts Setup.
type ResourceFactory interface {
	NewBallResource(kind BallKind, radius float64) (Resource, error)
	NewBoundaryResource(name string, width, depth float64) (Resource, error)
}

// NopFactory hands out resources that hold nothing. Used by headless runs.
type NopFactory struct{}

type nopResource struct{}

func (nopResource) Release() {}

func (NopFactory) NewBallResource(BallKind, float64) (Resource, error) {
	return nopResource{}, nil
}

func (NopFactory) NewBoundaryResource(string, float64, float64) (Resource, error) {
	return nopResource{}, nil
}
