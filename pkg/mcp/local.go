package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/senseihq/sensei/pkg/a2a"
	"github.com/senseihq/sensei/pkg/notes"
)

const defaultPastNotesLimit = 10

type toolFunc func(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error)

// LocalClient hosts the knowledge tools in-process. The tool table is
// built once at construction and never changes.
type LocalClient struct {
	store   notes.Store
	tools   map[string]toolFunc
	timeout time.Duration
}

type LocalOption func(*LocalClient)

func WithCallTimeout(timeout time.Duration) LocalOption {
	return func(c *LocalClient) {
		c.timeout = timeout
	}
}

// NewLocalClient builds the in-process tool host backed by the given
// learning-log store.
func NewLocalClient(store notes.Store, opts ...LocalOption) *LocalClient {
	c := &LocalClient{
		store:   store,
		timeout: 30 * time.Second,
	}
	c.tools = map[string]toolFunc{
		ToolDictionary:    c.dictionary,
		ToolCodeExplainer: c.codeExplainer,
		ToolPastNotes:     c.pastNotes,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *LocalClient) Call(ctx context.Context, toolName string, params map[string]interface{}) (Result, error) {
	slog.Info("MCP tool call", "tool", toolName, "backend", "local")

	tool, ok := c.tools[toolName]
	if !ok {
		return Result{}, a2a.NewError(a2a.KindUnknownTool, "",
			fmt.Sprintf("unknown tool %q", toolName), nil)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := tool(ctx, params)
	if err != nil {
		slog.Error("MCP tool failed", "tool", toolName, "error", err)
		return Result{Error: err.Error()}, a2a.NewError(a2a.KindToolError, "",
			fmt.Sprintf("tool %q failed", toolName), err)
	}

	return Result{OK: true, Data: data}, nil
}

func stringParam(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// dictionary returns a definition with usage examples. A small built-in
// lexicon covers common study terms; everything else gets a generic
// entry rather than a failure.
func (c *LocalClient) dictionary(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	word := stringParam(params, "word")
	if word == "" {
		return nil, fmt.Errorf("word parameter is required")
	}

	if entry, ok := lexicon[strings.ToLower(word)]; ok {
		return map[string]interface{}{
			"word":       word,
			"definition": entry.definition,
			"examples":   entry.examples,
		}, nil
	}

	return map[string]interface{}{
		"word":       word,
		"definition": fmt.Sprintf("No stored definition for %q.", word),
		"examples":   []string{},
	}, nil
}

// codeExplainer produces a structural summary of a snippet.
func (c *LocalClient) codeExplainer(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	snippet := stringParam(params, "snippet")
	if snippet == "" {
		return nil, fmt.Errorf("snippet parameter is required")
	}

	language := stringParam(params, "language")
	if language == "" {
		language = "plain"
	}

	lines := strings.Count(snippet, "\n") + 1
	explanation := fmt.Sprintf("This is a %d-line %s snippet. It should be read top to bottom; "+
		"identify the entry point first, then trace how data flows through it.", lines, language)

	return map[string]interface{}{
		"language":    language,
		"explanation": explanation,
	}, nil
}

// pastNotes queries the learning log. An empty history is a valid
// result with an empty notes list.
func (c *LocalClient) pastNotes(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	userID := stringParam(params, "user_id")
	if userID == "" {
		return nil, fmt.Errorf("user_id parameter is required")
	}
	topic := stringParam(params, "topic")

	limit := defaultPastNotesLimit
	if v, ok := params["limit"].(int); ok && v > 0 {
		limit = v
	}

	records, err := c.store.Query(ctx, userID, topic, limit)
	if err != nil {
		return nil, fmt.Errorf("learning-log query failed: %w", err)
	}

	// Always a list, never nil, so callers see notes: []
	list := make([]interface{}, 0, len(records))
	for _, note := range records {
		entry := map[string]interface{}{
			"id":         note.ID,
			"user_id":    note.UserID,
			"topic":      note.Topic,
			"content":    note.Content,
			"status":     note.Status,
			"created_at": note.CreatedAt,
		}
		if note.Score != nil {
			entry["score"] = *note.Score
		}
		if len(note.Tags) > 0 {
			entry["tags"] = note.Tags
		}
		list = append(list, entry)
	}

	return map[string]interface{}{
		"user_id": userID,
		"topic":   topic,
		"notes":   list,
		"count":   len(list),
	}, nil
}

type lexiconEntry struct {
	definition string
	examples   []string
}

var lexicon = map[string]lexiconEntry{
	"decorator": {
		definition: "A function that wraps another function or class to extend its behavior without changing it.",
		examples: []string{
			"The @property decorator makes a method accessible like an attribute.",
			"Decorators are commonly used for logging or authentication.",
		},
	},
	"comprehension": {
		definition: "A concise syntax for building lists, dictionaries or sets from an iterable.",
		examples: []string{
			"List comprehension: [x**2 for x in range(10)]",
			"Dictionary comprehension: {k: v for k, v in items}",
		},
	},
	"article": {
		definition: "A word (a, an, the) placed before a noun to mark whether it is specific or general.",
		examples: []string{
			"Use 'a' before consonant sounds: a cat, a university.",
			"Use 'an' before vowel sounds: an apple, an hour.",
			"Use 'the' for specific nouns: the cat I saw yesterday.",
		},
	},
}
