// Package a2a implements the Agent-to-Agent (A2A) task-message protocol.
// Every inter-agent call is carried by a TaskMessage envelope; responses
// are new TaskResult values echoing the request task_id.
package a2a

import (
	"time"

	"github.com/google/uuid"
)

// Agent names known to the platform. The receiver of a TaskMessage must
// be one of these (or a name registered at runtime).
const (
	AgentTeacher = "teacher"
	AgentQuiz    = "quiz"
	AgentReview  = "review"
)

// TaskMessage is the uniform envelope for inter-agent calls.
// It is created once by the dispatching side and never mutated after
// send; the task_id correlates request and response.
type TaskMessage struct {
	TaskID    string                 `json:"task_id"`
	Sender    string                 `json:"sender"`
	Receiver  string                 `json:"receiver"`
	Message   map[string]interface{} `json:"message"`
	Timestamp time.Time              `json:"timestamp,omitempty"`
}

// TaskResult is the response envelope. Sender and Receiver are swapped
// relative to the request; TaskID is echoed unchanged.
type TaskResult struct {
	TaskID   string      `json:"task_id"`
	Sender   string      `json:"sender"`
	Receiver string      `json:"receiver"`
	Result   interface{} `json:"result"`
}

// NewTaskMessage creates an envelope with a fresh task_id.
func NewTaskMessage(sender, receiver string, message map[string]interface{}) TaskMessage {
	return TaskMessage{
		TaskID:    uuid.NewString(),
		Sender:    sender,
		Receiver:  receiver,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewTaskResult builds the response envelope for a handled task.
func NewTaskResult(msg TaskMessage, responder string, result interface{}) TaskResult {
	return TaskResult{
		TaskID:   msg.TaskID,
		Sender:   responder,
		Receiver: msg.Sender,
		Result:   result,
	}
}
