package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ChatFallback is shown when a chat payload carries no usable answer.
const ChatFallback = "Sorry, I could not process your question."

// AnswerSource records which payload field produced a chat answer.
type AnswerSource string

const (
	SourceAnswer   AnswerSource = "answer"
	SourceMessage  AnswerSource = "message"
	SourceFallback AnswerSource = "fallback"
)

// ChatAnswer is the normalized reply to a chat question.
type ChatAnswer struct {
	Text string
	// Source is the payload field the text came from.
	Source AnswerSource
	// Structured is set when the text was unpacked from embedded JSON.
	Structured bool
}

// NormalizeChat extracts the assistant reply from an ask-doubt payload.
func NormalizeChat(raw json.RawMessage) ChatAnswer {
	fallback := ChatAnswer{Text: ChatFallback, Source: SourceFallback}
	if !gjson.ValidBytes(raw) {
		return fallback
	}
	payload := gjson.ParseBytes(raw)

	var (
		value  gjson.Result
		source AnswerSource
	)
	switch {
	case truthy(payload.Get("answer")):
		value, source = payload.Get("answer"), SourceAnswer
	case truthy(payload.Get("message")):
		value, source = payload.Get("message"), SourceMessage
	default:
		return fallback
	}

	if value.IsObject() {
		return unpackObject(value, source)
	}

	text := scalarText(value)
	trimmed := strings.TrimSpace(text)
	if value.Type == gjson.String && strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		if parsed, ok := parseEmbedded(trimmed); ok && parsed.IsObject() {
			return unpackObject(parsed, source)
		}
	}
	return ChatAnswer{Text: text, Source: source}
}

func unpackObject(obj gjson.Result, source AnswerSource) ChatAnswer {
	if text := firstText(obj, "", "message", "response", "answer", "explanation"); text != "" {
		return ChatAnswer{Text: text, Source: source, Structured: true}
	}
	return ChatAnswer{Text: FormatSections(obj), Source: source, Structured: true}
}

// FormatSections renders an object as labeled text blocks. Arrays become
// numbered lists, nested objects are pretty-printed and scalars are
// written as "LABEL: value".
func FormatSections(obj gjson.Result) string {
	var b strings.Builder
	obj.ForEach(func(key, value gjson.Result) bool {
		label := strings.ToUpper(key.String())
		switch {
		case value.IsArray():
			fmt.Fprintf(&b, "%s:\n", label)
			n := 0
			value.ForEach(func(_, item gjson.Result) bool {
				n++
				fmt.Fprintf(&b, "%d. %s\n", n, scalarText(item))
				return true
			})
			b.WriteString("\n")
		case value.IsObject():
			fmt.Fprintf(&b, "%s:\n%s\n\n", label, prettyJSON(value.Raw))
		default:
			fmt.Fprintf(&b, "%s: %s\n\n", label, scalarText(value))
		}
		return true
	})
	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return prettyJSON(obj.Raw)
	}
	return out
}
