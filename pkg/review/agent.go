// Package review implements the review agent: it summarizes a
// learner's past sessions and picks the next topic to revisit.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/senseihq/sensei/pkg/a2a"
	"github.com/senseihq/sensei/pkg/mcp"
)

// Scores below this mark a session as a weak point.
const weakScoreThreshold = 0.6

const defaultUserID = "default_user"

// Request is the typed payload carried in a review task message.
type Request struct {
	UserID string `mapstructure:"user_id" json:"user_id"`
	Topic  string `mapstructure:"topic" json:"topic"`
}

// Packet is the review result: a summary of prior sessions, the weak
// points found in them, and the suggested topic to study next.
type Packet struct {
	UserID             string   `json:"user_id"`
	Topic              string   `json:"topic"`
	Summary            string   `json:"summary"`
	WeakPoints         []string `json:"weak_points"`
	SuggestedNextTopic string   `json:"suggested_next_topic"`
}

// Agent builds review packets from the learning log, reached through
// the past_notes knowledge tool.
type Agent struct {
	tools mcp.Client
}

func NewAgent(tools mcp.Client) *Agent {
	return &Agent{tools: tools}
}

func (a *Agent) Name() string {
	return a2a.AgentReview
}

func (a *Agent) Handle(ctx context.Context, msg a2a.TaskMessage) (interface{}, error) {
	packet, err := a.Review(ctx, msg)
	if err != nil {
		return nil, err
	}
	return packet, nil
}

// Review decodes the request and builds the packet. A failed or empty
// history lookup is a valid "no prior history" packet, not an error.
func (a *Agent) Review(ctx context.Context, msg a2a.TaskMessage) (*Packet, error) {
	var req Request
	if err := mapstructure.Decode(msg.Message, &req); err != nil {
		return nil, a2a.NewError(a2a.KindInvalidRequest, msg.TaskID,
			"malformed review request payload", err)
	}

	if strings.TrimSpace(req.Topic) == "" {
		return nil, a2a.NewError(a2a.KindInvalidRequest, msg.TaskID,
			"topic is required", nil)
	}
	if req.UserID == "" {
		req.UserID = defaultUserID
	}

	slog.Info("Building review packet", "task_id", msg.TaskID,
		"user_id", req.UserID, "topic", req.Topic)

	result, err := a.tools.Call(ctx, mcp.ToolPastNotes, map[string]interface{}{
		"user_id": req.UserID,
		"topic":   req.Topic,
	})
	if err != nil {
		slog.Warn("History lookup failed, reporting no prior history",
			"task_id", msg.TaskID, "user_id", req.UserID, "error", err)
		return emptyPacket(req), nil
	}

	records := parseNotes(result)
	if len(records) == 0 {
		return emptyPacket(req), nil
	}

	return buildPacket(req, records), nil
}

func emptyPacket(req Request) *Packet {
	return &Packet{
		UserID:             req.UserID,
		Topic:              req.Topic,
		Summary:            fmt.Sprintf("No prior study history for %q. This looks like a fresh start.", req.Topic),
		WeakPoints:         []string{},
		SuggestedNextTopic: req.Topic,
	}
}

// noteRecord is the subset of a learning-log entry the review cares
// about, decoded from the tool result.
type noteRecord struct {
	Topic  string
	Score  *float64
	Status string
}

// parseNotes extracts note records from a past_notes result, keeping
// the store's newest-first order. Entries missing a topic are skipped.
func parseNotes(result mcp.Result) []noteRecord {
	list, ok := result.Data["notes"].([]interface{})
	if !ok {
		return nil
	}

	records := make([]noteRecord, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		topic, _ := entry["topic"].(string)
		if topic == "" {
			continue
		}

		record := noteRecord{Topic: topic}
		if score, ok := entry["score"].(float64); ok {
			record.Score = &score
		}
		record.Status, _ = entry["status"].(string)

		records = append(records, record)
	}

	return records
}

func buildPacket(req Request, records []noteRecord) *Packet {
	weakPoints := make([]string, 0)
	seenWeak := make(map[string]bool)
	for _, record := range records {
		if record.Score == nil || *record.Score >= weakScoreThreshold {
			continue
		}
		if seenWeak[record.Topic] {
			continue
		}
		seenWeak[record.Topic] = true
		weakPoints = append(weakPoints, record.Topic)
	}

	// Most recent weak point first; fall back to the requested topic
	// when every session scored well.
	suggested := req.Topic
	if len(weakPoints) > 0 {
		suggested = weakPoints[0]
	}

	return &Packet{
		UserID:             req.UserID,
		Topic:              req.Topic,
		Summary:            summarize(req.Topic, records, weakPoints),
		WeakPoints:         weakPoints,
		SuggestedNextTopic: suggested,
	}
}

func summarize(topic string, records []noteRecord, weakPoints []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You studied %q across %d session(s).", topic, len(records))

	recent := make([]string, 0, 3)
	seen := make(map[string]bool)
	for _, record := range records {
		if seen[record.Topic] {
			continue
		}
		seen[record.Topic] = true
		recent = append(recent, record.Topic)
		if len(recent) == 3 {
			break
		}
	}
	fmt.Fprintf(&sb, " Recent topics: %s.", strings.Join(recent, ", "))

	if len(weakPoints) > 0 {
		fmt.Fprintf(&sb, " Areas worth revisiting: %s.", strings.Join(weakPoints, ", "))
	} else {
		sb.WriteString(" No weak areas recorded; keep building on this.")
	}

	return sb.String()
}
