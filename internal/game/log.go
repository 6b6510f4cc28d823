package game

import "github.com/gdamore/tcell/v2"

// Message is one log entry with a severity color for the renderer.
type Message struct {
	Text  string
	Color tcell.Color
}

// MessageLog is the session's ordered, append-only message history.
type MessageLog struct {
	messages []Message
}

// NewMessageLog creates an empty log.
func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

// Log appends a message. Implements combat.Logger.
func (l *MessageLog) Log(text string, color tcell.Color) {
	l.messages = append(l.messages, Message{Text: text, Color: color})
}

// Messages returns all entries, oldest first.
func (l *MessageLog) Messages() []Message {
	return l.messages
}

// Len returns the number of entries.
func (l *MessageLog) Len() int {
	return len(l.messages)
}
