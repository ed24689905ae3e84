package render

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/session"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

// ChatGreeting opens every transcript.
const ChatGreeting = "Hi! I'm your AI study assistant. Ask me anything about your subjects."

// Chat renders the transcript oldest first. pending, when non-empty, is
// an assistant line that is shown but not part of the history, such as
// the apology after a failed request.
func Chat(history []session.ChatMessage, pending string, width int, now time.Time) string {
	bubbleWidth := width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = width
	}

	parts := []string{assistantBubble(ChatGreeting, "", bubbleWidth)}
	for _, m := range history {
		when := ""
		if !m.CreatedAt.IsZero() {
			when = humanize.RelTime(m.CreatedAt, now, "ago", "from now")
		}
		if m.Sender == session.SenderUser {
			parts = append(parts, userBubble(m.Text, when, bubbleWidth, width))
		} else {
			parts = append(parts, assistantBubble(m.Text, when, bubbleWidth))
		}
	}
	if pending != "" {
		parts = append(parts, assistantBubble(pending, "", bubbleWidth))
	}
	return strings.Join(parts, "\n\n")
}

func assistantBubble(text, when string, w int) string {
	head := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("AI Assistant")
	if when != "" {
		head += theme.Hint.Render("  " + when)
	}
	return head + "\n" + lipgloss.NewStyle().Width(w).Foreground(theme.Text).Render(text)
}

func userBubble(text, when string, w, total int) string {
	head := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("You")
	if when != "" {
		head = theme.Hint.Render(when+"  ") + head
	}
	body := lipgloss.NewStyle().Width(w).Align(lipgloss.Right).Foreground(theme.Text).Render(text)
	block := lipgloss.JoinVertical(lipgloss.Right, head, body)
	return lipgloss.PlaceHorizontal(total, lipgloss.Right, block)
}

// Answer renders a single tutor answer outside a transcript.
func Answer(a normalize.ChatAnswer, width int) string {
	return assistantBubble(a.Text, "", width)
}
