// Package quiz implements the quiz agent: question generation for a
// topic/level/type and stateless evaluation of submitted answers.
package quiz

// Supported question types.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeShortAnswer    = "short_answer"
	TypeTrueFalse      = "true_false"
)

// Request is the typed payload carried in a quiz task message.
type Request struct {
	Topic        string `mapstructure:"topic" json:"topic"`
	Subject      string `mapstructure:"subject" json:"subject,omitempty"`
	Level        string `mapstructure:"level" json:"level"`
	QuestionType string `mapstructure:"question_type" json:"question_type"`
	NumQuestions int    `mapstructure:"num_questions" json:"num_questions,omitempty"`
}

// Question is a single quiz item. CorrectAnswer and Explanation are
// always non-empty regardless of content source.
type Question struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Prompt        string   `json:"prompt"`
	Choices       []string `json:"choices,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is an ordered question set, created fresh per generate call and
// never mutated afterwards.
type Quiz struct {
	Topic     string     `json:"topic"`
	Subject   string     `json:"subject,omitempty"`
	Level     string     `json:"level"`
	Questions []Question `json:"questions"`
}

// QuestionResult is the per-question outcome of an evaluation, in quiz
// order.
type QuestionResult struct {
	QuestionID  string `json:"question_id"`
	Correct     bool   `json:"correct"`
	Answer      string `json:"answer,omitempty"`
	Expected    string `json:"expected"`
	Explanation string `json:"explanation"`
}

// EvaluationResult scores a submitted answer set against a quiz.
// Score is the correct fraction in [0, 1].
type EvaluationResult struct {
	Score       float64          `json:"score"`
	Correct     int              `json:"correct"`
	Total       int              `json:"total"`
	PerQuestion []QuestionResult `json:"per_question"`
}

func isSupportedType(questionType string) bool {
	switch questionType {
	case TypeMultipleChoice, TypeShortAnswer, TypeTrueFalse:
		return true
	}
	return false
}
