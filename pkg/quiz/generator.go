package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/senseihq/sensei/pkg/llms"
	"github.com/senseihq/sensei/pkg/prompts"
)

// Generator produces the question set for a request. Implementations
// must return exactly count questions, each with a non-empty correct
// answer and explanation.
type Generator interface {
	Questions(ctx context.Context, req Request, count int) ([]Question, error)
}

// LLMGenerator asks the text-generation provider for questions as JSON
// and falls back to StaticGenerator when the output is unusable. The
// fallback keeps generation total: a dead provider degrades quality,
// never availability.
type LLMGenerator struct {
	provider llms.Provider
	fallback *StaticGenerator
}

func NewLLMGenerator(provider llms.Provider) *LLMGenerator {
	return &LLMGenerator{
		provider: provider,
		fallback: NewStaticGenerator(),
	}
}

type generatedQuiz struct {
	Questions []generatedQuestion `json:"questions"`
}

type generatedQuestion struct {
	Prompt        string   `json:"prompt"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

func (g *LLMGenerator) Questions(ctx context.Context, req Request, count int) ([]Question, error) {
	userPrompt := buildQuizPrompt(req, count)

	raw, err := g.provider.GenerateJSON(ctx, prompts.Get("quiz"), userPrompt)
	if err != nil {
		slog.Warn("Quiz generation fell back to static questions",
			"topic", req.Topic, "error", err)
		return g.fallback.Questions(ctx, req, count)
	}

	questions, ok := parseGenerated(raw, req.QuestionType, count)
	if !ok {
		slog.Warn("Quiz generation returned unusable output, using static questions",
			"topic", req.Topic)
		return g.fallback.Questions(ctx, req, count)
	}

	return questions, nil
}

func buildQuizPrompt(req Request, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create %d %s questions about %q", count, req.QuestionType, req.Topic)
	if req.Subject != "" {
		fmt.Fprintf(&sb, " (subject: %s)", req.Subject)
	}
	fmt.Fprintf(&sb, " for a %s learner.\n\n", req.Level)
	sb.WriteString(`Respond with a single JSON object: {"questions": [{"prompt": ..., `)
	if req.QuestionType == TypeMultipleChoice {
		sb.WriteString(`"choices": [four options], `)
	}
	sb.WriteString(`"correct_answer": ..., "explanation": ...}]}`)
	if req.QuestionType == TypeTrueFalse {
		sb.WriteString(`. correct_answer must be "true" or "false"`)
	}
	sb.WriteString(".")
	return sb.String()
}

// parseGenerated validates the provider output. Anything short of the
// full contract (count questions, all fields present) is rejected.
func parseGenerated(raw, questionType string, count int) ([]Question, bool) {
	var parsed generatedQuiz
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, false
	}
	if len(parsed.Questions) < count {
		return nil, false
	}

	questions := make([]Question, 0, count)
	for i, gq := range parsed.Questions[:count] {
		if strings.TrimSpace(gq.Prompt) == "" ||
			strings.TrimSpace(gq.CorrectAnswer) == "" ||
			strings.TrimSpace(gq.Explanation) == "" {
			return nil, false
		}
		if questionType == TypeMultipleChoice && len(gq.Choices) < 2 {
			return nil, false
		}

		question := Question{
			ID:            fmt.Sprintf("q%d", i+1),
			Type:          questionType,
			Prompt:        gq.Prompt,
			CorrectAnswer: gq.CorrectAnswer,
			Explanation:   gq.Explanation,
		}
		if questionType == TypeMultipleChoice {
			question.Choices = gq.Choices
		}
		questions = append(questions, question)
	}

	return questions, true
}

// StaticGenerator produces deterministic template questions. It backs
// the mock provider and the LLM fallback path.
type StaticGenerator struct{}

func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (g *StaticGenerator) Questions(ctx context.Context, req Request, count int) ([]Question, error) {
	questions := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, staticQuestion(req, i))
	}
	return questions, nil
}

func staticQuestion(req Request, index int) Question {
	id := fmt.Sprintf("q%d", index+1)

	switch req.QuestionType {
	case TypeTrueFalse:
		return Question{
			ID:            id,
			Type:          TypeTrueFalse,
			Prompt:        fmt.Sprintf("Practicing %s regularly with small exercises improves retention. True or false?", req.Topic),
			CorrectAnswer: "true",
			Explanation:   "Spaced, hands-on practice is the most reliable way to retain a new concept.",
		}
	case TypeShortAnswer:
		return Question{
			ID:            id,
			Type:          TypeShortAnswer,
			Prompt:        fmt.Sprintf("Which topic are you practicing right now? Answer with its name (%s).", req.Topic),
			CorrectAnswer: req.Topic,
			Explanation:   fmt.Sprintf("Naming the topic (%s) anchors the session before the details.", req.Topic),
		}
	default:
		return Question{
			ID:     id,
			Type:   TypeMultipleChoice,
			Prompt: fmt.Sprintf("What is the best first step when studying %s at the %s level?", req.Topic, req.Level),
			Choices: []string{
				"Work through one small example by hand",
				"Memorize every rule before trying anything",
				"Skip the basics and start with edge cases",
				"Read about a different topic instead",
			},
			CorrectAnswer: "Work through one small example by hand",
			Explanation:   "A concrete example grounds the concept; rules and edge cases make sense only after it.",
		}
	}
}
