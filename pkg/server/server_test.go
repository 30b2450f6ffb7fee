package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senseihq/sensei/pkg/a2a"
	"github.com/senseihq/sensei/pkg/agent"
	"github.com/senseihq/sensei/pkg/config"
	"github.com/senseihq/sensei/pkg/llms"
	"github.com/senseihq/sensei/pkg/mcp"
	"github.com/senseihq/sensei/pkg/notes"
	"github.com/senseihq/sensei/pkg/quiz"
	"github.com/senseihq/sensei/pkg/review"
	"github.com/senseihq/sensei/pkg/teacher"
)

// newTestServer wires the full agent stack with in-memory backends.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	registry := agent.NewRegistry()
	dispatcher := agent.NewDispatcher(registry)

	quizAgent := quiz.NewAgent(quiz.NewStaticGenerator(), config.QuizConfig{
		QuestionCount:       3,
		DefaultLevel:        "beginner",
		DefaultQuestionType: quiz.TypeMultipleChoice,
	})
	reviewAgent := review.NewAgent(mcp.NewLocalClient(notes.NewMemoryStore()))
	teacherAgent := teacher.NewAgent(llms.NewMockProvider(), dispatcher)

	require.NoError(t, registry.Register(quizAgent))
	require.NoError(t, registry.Register(reviewAgent))
	require.NoError(t, registry.Register(teacherAgent))

	srv := New(config.ServerConfig{}, registry, dispatcher, teacherAgent, quizAgent)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestTeacherAsk(t *testing.T) {
	ts := newTestServer(t)

	t.Run("explain", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/teacher/ask", map[string]string{
			"question": "What is a decorator?",
			"topic":    "Python decorators",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "explain", body["answer_type"])
		assert.NotEmpty(t, body["content"])
	})

	t.Run("practice routes to quiz", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/teacher/ask", map[string]string{
			"question": "英語の冠詞の練習問題を出して",
			"topic":    "English articles",
			"subject":  "英語",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "practice", body["answer_type"])
		assert.NotEmpty(t, body["task_id"])

		content := body["content"].(map[string]interface{})
		assert.Equal(t, "English articles", content["topic"])
		assert.Len(t, content["questions"], 3)
	})

	t.Run("review routes to review agent", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/teacher/ask", map[string]string{
			"question": "前回の内容を復習したい",
			"topic":    "English articles",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "review", body["answer_type"])

		content := body["content"].(map[string]interface{})
		assert.Contains(t, content["summary"], "No prior study history")
	})

	t.Run("missing question", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/teacher/ask", map[string]string{"topic": "t"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		errBody := body["error"].(map[string]interface{})
		assert.Equal(t, "invalid_request", errBody["kind"])
	})
}

func TestGenerateQuizEndpoint(t *testing.T) {
	ts := newTestServer(t)

	msg := a2a.NewTaskMessage("cli", a2a.AgentQuiz, map[string]interface{}{
		"topic": "goroutines",
	})

	resp := postJSON(t, ts.URL+"/quiz/generate-quiz", msg)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, msg.TaskID, body["task_id"], "response envelope echoes the task id")
	assert.Equal(t, "quiz", body["sender"])
	assert.Equal(t, "cli", body["receiver"])

	result := body["result"].(map[string]interface{})
	assert.Equal(t, "goroutines", result["topic"])
	assert.Len(t, result["questions"], 3)
}

func TestGenerateQuizEnvelopeErrors(t *testing.T) {
	ts := newTestServer(t)

	t.Run("malformed envelope", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/quiz/generate-quiz", map[string]interface{}{
			"receiver": a2a.AgentQuiz,
			"message":  map[string]interface{}{"topic": "t"},
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		errBody := body["error"].(map[string]interface{})
		assert.Equal(t, "malformed_envelope", errBody["kind"])
	})

	t.Run("unknown receiver", func(t *testing.T) {
		msg := a2a.NewTaskMessage("cli", "billing", map[string]interface{}{"topic": "t"})
		resp := postJSON(t, ts.URL+"/quiz/generate-quiz", msg)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid request carries task_id", func(t *testing.T) {
		msg := a2a.NewTaskMessage("cli", a2a.AgentQuiz, map[string]interface{}{})
		resp := postJSON(t, ts.URL+"/quiz/generate-quiz", msg)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		errBody := body["error"].(map[string]interface{})
		assert.Equal(t, "invalid_request", errBody["kind"])
		assert.Equal(t, msg.TaskID, errBody["task_id"])
	})
}

func TestEvaluateEndpoint(t *testing.T) {
	ts := newTestServer(t)

	q := quiz.Quiz{
		Topic: "articles",
		Questions: []quiz.Question{
			{ID: "q1", Type: quiz.TypeTrueFalse, Prompt: "p", CorrectAnswer: "true", Explanation: "e"},
			{ID: "q2", Type: quiz.TypeShortAnswer, Prompt: "p", CorrectAnswer: "the", Explanation: "e"},
		},
	}

	t.Run("scores answers", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/quiz/evaluate", map[string]interface{}{
			"quiz":    q,
			"answers": map[string]string{"q1": "true", "q2": "THE"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(1), body["score"])
		assert.Len(t, body["per_question"], 2)
	})

	t.Run("answer set mismatch", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/quiz/evaluate", map[string]interface{}{
			"quiz":    q,
			"answers": map[string]string{"q9": "x"},
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		errBody := body["error"].(map[string]interface{})
		assert.Equal(t, "answer_set_mismatch", errBody["kind"])
	})
}

func TestReviewEndpoint(t *testing.T) {
	ts := newTestServer(t)

	msg := a2a.NewTaskMessage("cli", a2a.AgentReview, map[string]interface{}{
		"user_id": "u1",
		"topic":   "t1",
	})

	resp := postJSON(t, ts.URL+"/review/review", msg)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, msg.TaskID, body["task_id"])

	result := body["result"].(map[string]interface{})
	assert.Equal(t, "u1", result["user_id"])
	assert.Contains(t, result["summary"], "No prior study history")
}

func TestLivenessAndIndex(t *testing.T) {
	ts := newTestServer(t)

	t.Run("known agent", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/quiz/")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "quiz", body["agent"])
	})

	t.Run("unknown agent", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/billing/")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("index", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "sensei", body["service"])
		assert.ElementsMatch(t, []interface{}{"quiz", "review", "teacher"}, body["agents"])
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/metrics")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})
}
