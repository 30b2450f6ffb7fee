package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/senseihq/sensei/pkg/a2a"
)

// Client-side commands for talking to a running server over the
// task-message protocol.

// QuizCmd requests a quiz from a running server.
type QuizCmd struct {
	Server       string `help:"Server base URL." default:"http://localhost:8000"`
	Topic        string `arg:"" help:"Topic to generate questions for."`
	Subject      string `help:"Subject area."`
	Level        string `help:"Difficulty level."`
	QuestionType string `name:"question-type" help:"Question type (multiple_choice, short_answer, true_false)."`
	Timeout      int    `help:"Request timeout in seconds." default:"30"`
}

func (c *QuizCmd) Run() error {
	message := map[string]interface{}{"topic": c.Topic}
	if c.Subject != "" {
		message["subject"] = c.Subject
	}
	if c.Level != "" {
		message["level"] = c.Level
	}
	if c.QuestionType != "" {
		message["question_type"] = c.QuestionType
	}

	return sendTask(c.Server, c.Timeout, a2a.AgentQuiz, "/quiz/generate-quiz", message)
}

// ReviewCmd requests a review packet from a running server.
type ReviewCmd struct {
	Server  string `help:"Server base URL." default:"http://localhost:8000"`
	Topic   string `arg:"" help:"Topic to review."`
	UserID  string `name:"user" help:"Learner id." default:"default_user"`
	Timeout int    `help:"Request timeout in seconds." default:"30"`
}

func (c *ReviewCmd) Run() error {
	return sendTask(c.Server, c.Timeout, a2a.AgentReview, "/review/review", map[string]interface{}{
		"user_id": c.UserID,
		"topic":   c.Topic,
	})
}

func sendTask(server string, timeoutSec int, receiver, endpoint string, message map[string]interface{}) error {
	timeout := time.Duration(timeoutSec) * time.Second
	client := a2a.NewClient(server, a2a.WithTimeout(timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	msg := a2a.NewTaskMessage("cli", receiver, message)
	result, err := client.SendTask(ctx, endpoint, msg)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result.Result); err != nil {
		return fmt.Errorf("failed to print result: %w", err)
	}
	return nil
}
