package a2a

import (
	"fmt"
	"log/slog"
)

// ReceiverDirectory reports whether an agent name is registered.
// The agent registry satisfies this.
type ReceiverDirectory interface {
	Has(name string) bool
}

// Validate checks the envelope shape. Receiver membership is only
// checked when a directory is supplied.
func Validate(msg TaskMessage, dir ReceiverDirectory) error {
	if msg.TaskID == "" {
		return NewError(KindMalformedEnvelope, msg.TaskID, "task_id is required", nil)
	}
	if msg.Sender == "" {
		return NewError(KindMalformedEnvelope, msg.TaskID, "sender is required", nil)
	}
	if msg.Receiver == "" {
		return NewError(KindMalformedEnvelope, msg.TaskID, "receiver is required", nil)
	}
	if dir != nil && !dir.Has(msg.Receiver) {
		return NewError(KindUnknownReceiver, msg.TaskID,
			fmt.Sprintf("receiver %q is not a registered agent", msg.Receiver), nil)
	}
	return nil
}

// LogSend records an outgoing envelope. Every send is traceable by
// task_id.
func LogSend(msg TaskMessage) {
	slog.Info("A2A task sent",
		"task_id", msg.TaskID,
		"sender", msg.Sender,
		"receiver", msg.Receiver,
	)
}

// LogReceive records an incoming envelope on the handling side.
func LogReceive(msg TaskMessage) {
	slog.Info("A2A task received",
		"task_id", msg.TaskID,
		"sender", msg.Sender,
		"receiver", msg.Receiver,
	)
}
