// Package agent defines the agent abstraction and the in-process
// dispatcher that routes task messages between agents.
package agent

import (
	"context"

	"github.com/senseihq/sensei/pkg/a2a"
	"github.com/senseihq/sensei/pkg/registry"
)

// Agent handles task messages addressed to it. Handle returns the
// result payload; envelope wrapping is the dispatcher's job.
type Agent interface {
	Name() string
	Handle(ctx context.Context, msg a2a.TaskMessage) (interface{}, error)
}

// Registry holds the agents known to this process. It doubles as the
// receiver directory for envelope validation.
type Registry struct {
	*registry.BaseRegistry[Agent]
}

func NewRegistry() *Registry {
	return &Registry{
		BaseRegistry: registry.NewBaseRegistry[Agent](),
	}
}

// Register adds an agent under its own name.
func (r *Registry) Register(a Agent) error {
	return r.BaseRegistry.Register(a.Name(), a)
}

// Has reports whether name is a registered receiver.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}
