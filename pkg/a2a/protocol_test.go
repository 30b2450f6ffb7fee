package a2a

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory map[string]bool

func (d fakeDirectory) Has(name string) bool { return d[name] }

func TestNewTaskMessage(t *testing.T) {
	message := map[string]interface{}{
		"topic": "English articles",
		"level": "beginner",
	}

	msg := NewTaskMessage(AgentTeacher, AgentQuiz, message)

	assert.NotEmpty(t, msg.TaskID)
	assert.Equal(t, AgentTeacher, msg.Sender)
	assert.Equal(t, AgentQuiz, msg.Receiver)
	assert.False(t, msg.Timestamp.IsZero())

	// Pass-through: the payload is wrapped, never rewritten
	assert.Equal(t, message, msg.Message)

	other := NewTaskMessage(AgentTeacher, AgentQuiz, message)
	assert.NotEqual(t, msg.TaskID, other.TaskID)
}

func TestValidate(t *testing.T) {
	dir := fakeDirectory{AgentQuiz: true, AgentReview: true}

	tests := []struct {
		name     string
		msg      TaskMessage
		wantKind ErrorKind
	}{
		{
			name: "valid envelope",
			msg:  NewTaskMessage(AgentTeacher, AgentQuiz, map[string]interface{}{"topic": "t"}),
		},
		{
			name: "missing task_id",
			msg: TaskMessage{
				Sender:   AgentTeacher,
				Receiver: AgentQuiz,
			},
			wantKind: KindMalformedEnvelope,
		},
		{
			name: "missing sender",
			msg: TaskMessage{
				TaskID:   "task-1",
				Receiver: AgentQuiz,
			},
			wantKind: KindMalformedEnvelope,
		},
		{
			name: "missing receiver",
			msg: TaskMessage{
				TaskID: "task-1",
				Sender: AgentTeacher,
			},
			wantKind: KindMalformedEnvelope,
		},
		{
			name: "unregistered receiver",
			msg: TaskMessage{
				TaskID:   "task-1",
				Sender:   AgentTeacher,
				Receiver: "planner",
			},
			wantKind: KindUnknownReceiver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.msg, dir)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestValidate_SendThenValidate(t *testing.T) {
	dir := fakeDirectory{AgentQuiz: true}

	message := map[string]interface{}{
		"topic":         "Python decorators",
		"subject":       "Python",
		"level":         "beginner",
		"question_type": "multiple_choice",
	}

	msg := NewTaskMessage(AgentTeacher, AgentQuiz, message)
	require.NoError(t, Validate(msg, dir))
	assert.Equal(t, message, msg.Message)
}

func TestNewTaskResult(t *testing.T) {
	msg := NewTaskMessage(AgentTeacher, AgentQuiz, map[string]interface{}{"topic": "t"})

	result := NewTaskResult(msg, AgentQuiz, map[string]interface{}{"questions": []string{}})

	assert.Equal(t, msg.TaskID, result.TaskID)
	assert.Equal(t, AgentQuiz, result.Sender)
	assert.Equal(t, AgentTeacher, result.Receiver)
}
