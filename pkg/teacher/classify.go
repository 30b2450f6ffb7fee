package teacher

import "strings"

// Intent is the classified purpose of a learner question.
type Intent string

const (
	IntentExplain  Intent = "explain"
	IntentPractice Intent = "practice"
	IntentReview   Intent = "review"
)

// rule pairs an intent with the keywords that signal it. Rules are
// evaluated in table order; the first hit wins.
type rule struct {
	intent   Intent
	keywords []string
}

// Practice outranks review outranks explain: a request for exercises is
// the most specific signal even when the text also contains explain or
// review phrasing.
var rules = []rule{
	{
		intent: IntentPractice,
		keywords: []string{
			// Japanese
			"練習", "問題を出して", "問題を出題", "クイズ", "テストして", "演習",
			// English
			"practice", "exercise", "quiz", "drill", "test me", "give me problems",
		},
	},
	{
		intent: IntentReview,
		keywords: []string{
			// Japanese
			"復習", "前回", "この前", "振り返り", "おさらい",
			// English
			"review", "recap", "last time", "previously", "go over again", "went over",
		},
	},
}

// Classify maps a free-text question to an intent. Questions matching
// no rule default to explain.
func Classify(question string) Intent {
	lowered := strings.ToLower(question)

	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(lowered, keyword) {
				return r.intent
			}
		}
	}

	return IntentExplain
}
