package controller

import (
	"errors"
	"fmt"

	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/transport"
)

// ChatErrorReply is shown in the transcript, but never stored, when a chat
// turn fails.
const ChatErrorReply = "Sorry, I encountered an error. Please check if the server is running and try again."

// StatusErrorText is shown in place of the agent list when a poll fails.
const StatusErrorText = "Failed to load system status. Please check if the server is running."

func failureNotice(op transport.Operation) string {
	switch op {
	case transport.OpAskDoubt:
		return "Chat error: Unable to connect to server"
	case transport.OpStudyPlan:
		return "Failed to generate study plan. Please check if the server is running."
	case transport.OpAnalyzeProgress:
		return "Progress analysis failed. Please check if the server is running."
	case transport.OpUploadNotes:
		return "Failed to upload notes. Please check if the server is running."
	case transport.OpGenerateQuestions:
		return "Failed to generate questions. Please check if the server is running."
	case transport.OpGenerateMCQs:
		return "Failed to generate MCQs. Please check if the server is running."
	case transport.OpDemo:
		return "Demo trigger failed. Please check if the server is running."
	default:
		return fmt.Sprintf("%s failed. Please check if the server is running.", op.Label())
	}
}

func invalidNotice(err error) string {
	var ve *requests.ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}
	return err.Error()
}
