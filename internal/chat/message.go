// Package chat holds the assistant conversation boundary: transcripts,
// attachment normalization and the remote completion client.
package chat

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Attachment struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Content string `json:"content" yaml:"content"`
}

type Message struct {
	ID          string       `json:"id" yaml:"id"`
	Role        Role         `json:"role" yaml:"role"`
	Content     string       `json:"content" yaml:"content"`
	Attachments []Attachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	At          time.Time    `json:"at" yaml:"at"`
	Failed      bool         `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Sender performs one completion round trip. msgs is the conversation so
// far, ending with the newest user message; atts belong to that message.
type Sender interface {
	Send(ctx context.Context, msgs []Message, atts []Attachment) (string, error)
}

// Titler is implemented by senders that can name a conversation.
type Titler interface {
	Title(ctx context.Context, firstPrompt string) (string, error)
}

// Configured is implemented by senders that may lack credentials.
type Configured interface {
	Configured() bool
}
