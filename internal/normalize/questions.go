package normalize

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// QuestionKind distinguishes open practice questions from MCQs.
type QuestionKind string

const (
	KindQuestions QuestionKind = "questions"
	KindMCQs      QuestionKind = "mcqs"
)

// FailureText is the message shown when no questions came back.
func (k QuestionKind) FailureText() string {
	if k == KindMCQs {
		return "Failed to generate MCQs or no MCQs returned"
	}
	return "Failed to generate questions or no questions returned"
}

// Option is one lettered answer choice.
type Option struct {
	Letter  string
	Text    string
	Correct bool
}

// Question is a single generated question with defaults applied.
type Question struct {
	Number        int
	Type          string
	Difficulty    string
	Text          string
	Options       []Option
	CorrectAnswer string
	Explanation   string
}

// QuestionList is the normalized question or MCQ generation result.
type QuestionList struct {
	Kind           QuestionKind
	Type           string
	TotalGenerated int
	Questions      []Question
	Failed         bool
	Message        string
}

// NormalizeQuestions passes the generated questions through in order,
// applying per-field defaults.
func NormalizeQuestions(raw json.RawMessage, kind QuestionKind) QuestionList {
	failed := QuestionList{Kind: kind, Failed: true, Message: kind.FailureText()}
	if !gjson.ValidBytes(raw) {
		return failed
	}
	payload := gjson.ParseBytes(raw)
	items := payload.Get("questions")
	if explicitlyFalse(payload.Get("success")) || !items.IsArray() {
		return failed
	}

	out := QuestionList{Kind: kind, Type: textOr(payload.Get("type"), defaultQuestionType(kind))}
	items.ForEach(func(_, q gjson.Result) bool {
		out.Questions = append(out.Questions, question(len(out.Questions)+1, q))
		return true
	})
	if len(out.Questions) == 0 {
		return failed
	}

	out.TotalGenerated = len(out.Questions)
	if n, ok := number(payload.Get("total_generated")); ok && n > 0 {
		out.TotalGenerated = int(n)
	}
	return out
}

func question(n int, q gjson.Result) Question {
	item := Question{
		Number:        n,
		Type:          textOr(q.Get("type"), "Unknown"),
		Difficulty:    textOr(q.Get("difficulty"), "Medium"),
		Text:          textOr(q.Get("question"), "No question text"),
		CorrectAnswer: textOr(q.Get("correct_answer"), ""),
		Explanation:   textOr(q.Get("explanation"), ""),
	}
	for i, opt := range stringList(q.Get("options")) {
		letter := string(rune('A' + i))
		item.Options = append(item.Options, Option{
			Letter:  letter,
			Text:    opt,
			Correct: item.CorrectAnswer == letter,
		})
	}
	return item
}

func defaultQuestionType(kind QuestionKind) string {
	if kind == KindMCQs {
		return "mcq"
	}
	return "practice"
}
