package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/senseihq/sensei/pkg/a2a"
	"github.com/senseihq/sensei/pkg/quiz"
	"github.com/senseihq/sensei/pkg/teacher"
)

type errorBody struct {
	Kind    a2a.ErrorKind `json:"kind"`
	Message string        `json:"message"`
	TaskID  string        `json:"task_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := a2a.KindOf(err)

	body := errorBody{Kind: kind, Message: err.Error()}
	var pe *a2a.Error
	if errors.As(err, &pe) {
		body.Message = pe.Message
		body.TaskID = pe.TaskID
	}

	slog.Error("Request failed", "kind", kind, "task_id", body.TaskID, "error", err)
	writeJSON(w, a2a.HTTPStatus(kind), map[string]interface{}{"error": body})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "sensei",
		"agents":  s.registry.Names(),
		"endpoints": []string{
			"POST /teacher/ask",
			"POST /quiz/generate-quiz",
			"POST /quiz/evaluate",
			"POST /review/review",
			"GET /{agent}/",
			"GET /metrics",
		},
	})
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "agent")
	if !s.registry.Has(name) {
		writeError(w, a2a.NewError(a2a.KindUnknownReceiver, "",
			"unknown agent "+name, nil))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"agent":  name,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req teacher.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, a2a.NewError(a2a.KindInvalidRequest, "",
			"invalid request body", err))
		return
	}

	resp, err := s.teacher.Ask(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleGenerateQuiz and handleReview accept raw task messages, so
// external callers speak the same protocol agents use internally.
func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	s.handleTask(w, r)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	s.handleTask(w, r)
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	var msg a2a.TaskMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, a2a.NewError(a2a.KindMalformedEnvelope, "",
			"invalid task message body", err))
		return
	}

	result, err := s.dispatcher.Dispatch(r.Context(), msg)
	if err != nil {
		writeError(w, err)
		return
	}

	// Full response envelope: the task_id echo is what lets external
	// callers correlate request and response.
	writeJSON(w, http.StatusOK, result)
}

type evaluateRequest struct {
	Quiz    quiz.Quiz         `json:"quiz"`
	Answers map[string]string `json:"answers"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, a2a.NewError(a2a.KindInvalidRequest, "",
			"invalid request body", err))
		return
	}

	result, err := s.quiz.Evaluate(req.Quiz, req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
