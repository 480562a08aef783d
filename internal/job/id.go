package job

import "go.jetify.com/typeid"

// Prefix is used to define the run typeid prefix
type Prefix struct{}

// Prefix returns the run id prefix "run"
func (Prefix) Prefix() string { return "run" }

// ID identifies one launch. It stands in for the scheduler's job id when the
// launcher runs outside an allocation.
type ID struct {
	typeid.TypeID[Prefix]
}

// NewID returns a new ID
func NewID() (ID, error) {
	return typeid.New[ID]()
}
