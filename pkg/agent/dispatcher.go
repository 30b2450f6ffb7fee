package agent

import (
	"context"
	"fmt"

	"github.com/senseihq/sensei/pkg/a2a"
)

// Dispatcher routes validated task messages to registered agents and
// wraps their results in response envelopes.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch validates msg, hands it to the receiver agent, and returns
// the response envelope. The request envelope is never modified.
func (d *Dispatcher) Dispatch(ctx context.Context, msg a2a.TaskMessage) (a2a.TaskResult, error) {
	if err := a2a.Validate(msg, d.registry); err != nil {
		return a2a.TaskResult{}, err
	}

	target, ok := d.registry.Get(msg.Receiver)
	if !ok {
		// Validate already checked the directory; a miss here means the
		// registry changed mid-flight.
		return a2a.TaskResult{}, a2a.NewError(a2a.KindUnknownReceiver, msg.TaskID,
			fmt.Sprintf("unknown receiver %q", msg.Receiver), nil)
	}

	a2a.LogReceive(msg)

	result, err := target.Handle(ctx, msg)
	if err != nil {
		return a2a.TaskResult{}, err
	}

	return a2a.NewTaskResult(msg, target.Name(), result), nil
}

// Send builds an envelope from sender to receiver and dispatches it.
// This is the path agents use to delegate to each other in-process.
func (d *Dispatcher) Send(ctx context.Context, sender, receiver string, message map[string]interface{}) (a2a.TaskResult, error) {
	msg := a2a.NewTaskMessage(sender, receiver, message)
	a2a.LogSend(msg)
	return d.Dispatch(ctx, msg)
}
