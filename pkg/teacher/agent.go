// Package teacher implements the entry-point agent. It classifies the
// learner's question and either answers directly or delegates to the
// quiz or review agent over the task-message protocol.
package teacher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/senseihq/sensei/pkg/a2a"
	"github.com/senseihq/sensei/pkg/llms"
	"github.com/senseihq/sensei/pkg/prompts"
)

// Defaults applied when building downstream task messages.
const (
	defaultLevel        = "beginner"
	defaultQuestionType = "multiple_choice"
	defaultUserID       = "default_user"
)

const explanationFallback = "I could not produce an explanation right now. " +
	"Please try again in a moment, or rephrase the question."

// Sender dispatches a task message to another agent and returns its
// response envelope.
type Sender interface {
	Send(ctx context.Context, sender, receiver string, message map[string]interface{}) (a2a.TaskResult, error)
}

// AskRequest is the learner-facing input.
type AskRequest struct {
	Question string `mapstructure:"question" json:"question"`
	Topic    string `mapstructure:"topic" json:"topic"`
	Subject  string `mapstructure:"subject" json:"subject,omitempty"`
	UserID   string `mapstructure:"user_id" json:"user_id,omitempty"`
}

// Response is the teacher's answer. AnswerType names the branch taken;
// TaskID is set when a downstream agent was involved.
type Response struct {
	AnswerType Intent      `json:"answer_type"`
	Content    interface{} `json:"content"`
	TaskID     string      `json:"task_id,omitempty"`
}

// Agent is the platform entry point.
type Agent struct {
	provider llms.Provider
	sender   Sender
}

func NewAgent(provider llms.Provider, sender Sender) *Agent {
	return &Agent{
		provider: provider,
		sender:   sender,
	}
}

func (a *Agent) Name() string {
	return a2a.AgentTeacher
}

// Handle serves ask for task messages addressed to the teacher.
func (a *Agent) Handle(ctx context.Context, msg a2a.TaskMessage) (interface{}, error) {
	var req AskRequest
	if err := mapstructure.Decode(msg.Message, &req); err != nil {
		return nil, a2a.NewError(a2a.KindInvalidRequest, msg.TaskID,
			"malformed ask payload", err)
	}
	return a.Ask(ctx, req)
}

// Ask classifies the question and runs exactly one branch. The topic is
// forwarded unmodified to whichever agent handles the request.
func (a *Agent) Ask(ctx context.Context, req AskRequest) (*Response, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, a2a.NewError(a2a.KindInvalidRequest, "",
			"question is required", nil)
	}

	intent := Classify(req.Question)
	slog.Info("Classified question", "intent", intent, "topic", req.Topic)

	switch intent {
	case IntentPractice:
		return a.practice(ctx, req)
	case IntentReview:
		return a.review(ctx, req)
	default:
		return a.explain(ctx, req)
	}
}

// explain answers directly through the text-generation provider. A
// provider failure degrades to a fallback message instead of an error.
func (a *Agent) explain(ctx context.Context, req AskRequest) (*Response, error) {
	prompt := req.Question
	if req.Topic != "" {
		prompt = fmt.Sprintf("Topic: %s\n\n%s", req.Topic, req.Question)
	}

	content, err := a.provider.Generate(ctx, prompts.Get("teacher"), prompt)
	if err != nil {
		unavailable := a2a.NewError(a2a.KindExplanationUnavailable, "",
			"text generation failed", err)
		slog.Error("Explanation unavailable", "topic", req.Topic, "error", unavailable)
		return &Response{
			AnswerType: IntentExplain,
			Content:    explanationFallback,
		}, nil
	}

	return &Response{
		AnswerType: IntentExplain,
		Content:    content,
	}, nil
}

func (a *Agent) practice(ctx context.Context, req AskRequest) (*Response, error) {
	result, err := a.sender.Send(ctx, a2a.AgentTeacher, a2a.AgentQuiz, map[string]interface{}{
		"topic":         req.Topic,
		"subject":       req.Subject,
		"level":         defaultLevel,
		"question_type": defaultQuestionType,
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		AnswerType: IntentPractice,
		Content:    result.Result,
		TaskID:     result.TaskID,
	}, nil
}

func (a *Agent) review(ctx context.Context, req AskRequest) (*Response, error) {
	userID := req.UserID
	if userID == "" {
		userID = defaultUserID
	}

	result, err := a.sender.Send(ctx, a2a.AgentTeacher, a2a.AgentReview, map[string]interface{}{
		"user_id": userID,
		"topic":   req.Topic,
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		AnswerType: IntentReview,
		Content:    result.Result,
		TaskID:     result.TaskID,
	}, nil
}
