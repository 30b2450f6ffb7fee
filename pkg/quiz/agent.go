package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/senseihq/sensei/pkg/a2a"
	"github.com/senseihq/sensei/pkg/config"
)

// Agent generates quizzes from task messages and evaluates submitted
// answers. Evaluation is stateless: the quiz travels with the answers.
type Agent struct {
	generator Generator
	defaults  config.QuizConfig
}

func NewAgent(generator Generator, defaults config.QuizConfig) *Agent {
	return &Agent{
		generator: generator,
		defaults:  defaults,
	}
}

func (a *Agent) Name() string {
	return a2a.AgentQuiz
}

// Handle serves the generate operation for a task message addressed to
// the quiz agent.
func (a *Agent) Handle(ctx context.Context, msg a2a.TaskMessage) (interface{}, error) {
	quiz, err := a.Generate(ctx, msg)
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

// Generate decodes the request payload from the envelope and produces
// a fresh quiz.
func (a *Agent) Generate(ctx context.Context, msg a2a.TaskMessage) (*Quiz, error) {
	var req Request
	if err := mapstructure.Decode(msg.Message, &req); err != nil {
		return nil, a2a.NewError(a2a.KindInvalidRequest, msg.TaskID,
			"malformed quiz request payload", err)
	}

	if strings.TrimSpace(req.Topic) == "" {
		return nil, a2a.NewError(a2a.KindInvalidRequest, msg.TaskID,
			"topic is required", nil)
	}

	if req.Level == "" {
		req.Level = a.defaults.DefaultLevel
	}
	if req.QuestionType == "" {
		req.QuestionType = a.defaults.DefaultQuestionType
	}
	if !isSupportedType(req.QuestionType) {
		return nil, a2a.NewError(a2a.KindInvalidRequest, msg.TaskID,
			fmt.Sprintf("unsupported question_type %q (must be %s, %s, or %s)",
				req.QuestionType, TypeMultipleChoice, TypeShortAnswer, TypeTrueFalse), nil)
	}

	count := req.NumQuestions
	if count <= 0 {
		count = a.defaults.QuestionCount
	}

	slog.Info("Generating quiz", "task_id", msg.TaskID, "topic", req.Topic,
		"level", req.Level, "question_type", req.QuestionType, "count", count)

	questions, err := a.generator.Questions(ctx, req, count)
	if err != nil {
		return nil, a2a.NewError(a2a.KindInternal, msg.TaskID,
			"quiz generation failed", err)
	}

	return &Quiz{
		Topic:     req.Topic,
		Subject:   req.Subject,
		Level:     req.Level,
		Questions: questions,
	}, nil
}

// Evaluate scores submitted answers against a quiz. Answers for
// question ids outside the quiz are an answer-set mismatch; questions
// with no submitted answer count as incorrect.
func (a *Agent) Evaluate(quiz Quiz, answers map[string]string) (*EvaluationResult, error) {
	known := make(map[string]bool, len(quiz.Questions))
	for _, q := range quiz.Questions {
		known[q.ID] = true
	}
	for id := range answers {
		if !known[id] {
			return nil, a2a.NewError(a2a.KindAnswerSetMismatch, "",
				fmt.Sprintf("answer references unknown question id %q", id), nil)
		}
	}

	result := &EvaluationResult{
		Total:       len(quiz.Questions),
		PerQuestion: make([]QuestionResult, 0, len(quiz.Questions)),
	}

	for _, q := range quiz.Questions {
		answer, answered := answers[q.ID]
		correct := answered && answerMatches(q, answer)
		if correct {
			result.Correct++
		}

		result.PerQuestion = append(result.PerQuestion, QuestionResult{
			QuestionID:  q.ID,
			Correct:     correct,
			Answer:      answer,
			Expected:    q.CorrectAnswer,
			Explanation: q.Explanation,
		})
	}

	if result.Total > 0 {
		result.Score = float64(result.Correct) / float64(result.Total)
	}

	return result, nil
}

// answerMatches applies the per-type comparison rule: exact for
// multiple_choice and true_false, case-insensitive trimmed for
// short_answer.
func answerMatches(q Question, answer string) bool {
	if q.Type == TypeShortAnswer {
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
	}
	return answer == q.CorrectAnswer
}
