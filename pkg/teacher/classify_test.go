package teacher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     Intent
	}{
		// Practice
		{"japanese practice request", "英語の冠詞の練習問題を出して", IntentPractice},
		{"english practice request", "Give me some practice on goroutines", IntentPractice},
		{"quiz request", "Can you quiz me on Python decorators?", IntentPractice},
		{"test me", "test me on list comprehensions", IntentPractice},

		// Review
		{"japanese review request", "前回の内容を復習したい", IntentReview},
		{"english review request", "Let's review what I studied", IntentReview},
		{"recap request", "quick recap of last week please", IntentReview},

		// Explain (default)
		{"japanese explain request", "デコレータとは何ですか", IntentExplain},
		{"english explain request", "What is a closure?", IntentExplain},
		{"no keywords at all", "hmm", IntentExplain},

		// Priority: practice beats review beats explain
		{"practice beats review", "復習のためにクイズを出して", IntentPractice},
		{"practice beats explain", "Explain articles and give me an exercise", IntentPractice},
		{"review beats explain", "Explain again what we went over last time", IntentReview},

		// Matching is case-insensitive
		{"uppercase keyword", "PRACTICE problems please", IntentPractice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.question))
		})
	}
}
