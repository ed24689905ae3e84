package normalize

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// NotesResult is the normalized outcome of a notes upload.
type NotesResult struct {
	OK            bool
	Message       string
	Subject       string
	ContentLength int
	FromFile      bool
	FileType      string
	Preview       string
	KeyTopics     []string
	NextSteps     []string
}

// MethodLabel names how the notes were provided.
func (n NotesResult) MethodLabel() string {
	if n.FromFile {
		return "File Upload"
	}
	return "Text Input"
}

// NormalizeNotes reads the processing result of an upload-notes payload.
func NormalizeNotes(raw json.RawMessage) NotesResult {
	if !gjson.ValidBytes(raw) {
		return NotesResult{Message: "Failed to process notes"}
	}
	payload := gjson.ParseBytes(raw)
	result := payload.Get("processing_result")
	if explicitlyFalse(payload.Get("success")) || !result.IsObject() {
		return NotesResult{Message: textOr(result.Get("message"), "Failed to process notes")}
	}

	length, _ := number(result.Get("content_length"))
	out := NotesResult{
		OK:            true,
		Message:       textOr(result.Get("message"), "Notes processed successfully"),
		Subject:       textOr(result.Get("subject"), "General"),
		ContentLength: int(length),
		FromFile:      result.Get("upload_method").String() == "file",
		FileType:      textOr(result.Get("file_type"), ""),
		Preview:       textOr(result.Get("processed_content_preview"), ""),
		KeyTopics:     stringList(result.Get("key_topics")),
	}
	out.NextSteps = []string{
		"Ask questions about this content in the AI Tutor chat",
		"Generate practice questions using the Questions tab",
		"Create MCQs for self-testing using the MCQs tab",
	}
	if out.FromFile {
		out.NextSteps = append(out.NextSteps, "Upload more files to expand your knowledge base")
	}
	return out
}
