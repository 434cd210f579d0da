package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/kario/internal/storage"
)

const (
	missingKeyReply = "Chat is not configured. Set KARIO_CHAT_API_KEY to enable it."
	guidanceSuffix  = " Please verify your API key is valid and has quota remaining."
	titleMaxLen     = 40
)

var ErrEmptyMessage = errors.New("chat: message is empty")

// Transcript is the stored form of one conversation.
type Transcript struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Messages []Message `json:"messages" yaml:"messages"`
}

// Chats persists transcripts in a storage.Store and drives the sender.
type Chats struct {
	mu     sync.Mutex
	store  storage.Store
	sender Sender
	now    func() time.Time
	log    *slog.Logger
}

func NewChats(store storage.Store, sender Sender, log *slog.Logger) *Chats {
	if log == nil {
		log = slog.Default()
	}
	return &Chats{store: store, sender: sender, now: time.Now, log: log}
}

// NewID returns a fresh conversation id.
func NewID() string {
	return uuid.NewString()
}

func (c *Chats) Load(ctx context.Context, id string) Transcript {
	tr := storage.Load(ctx, c.store, storage.ChatKey(id), Transcript{})
	tr.ID = id
	return tr
}

// List returns the ids of stored conversations.
func (c *Chats) List(ctx context.Context) ([]string, error) {
	keys, err := c.store.Keys(ctx, storage.ChatKeyPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, storage.ChatKeyPrefix))
	}
	return ids, nil
}

func (c *Chats) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, storage.ChatKey(id))
}

// Send appends the user message, asks the sender for a reply and stores
// both. Sender failures become an assistant message starting with
// "Error:"; the returned error is only for storage problems.
func (c *Chats) Send(ctx context.Context, id, text string, atts []Attachment) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && len(atts) == 0 {
		return Message{}, ErrEmptyMessage
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	tr := c.Load(ctx, id)
	first := len(tr.Messages) == 0
	user := Message{ID: NewID(), Role: RoleUser, Content: text, Attachments: atts, At: c.now()}
	tr.Messages = append(tr.Messages, user)

	reply := c.reply(ctx, tr.Messages, atts)
	tr.Messages = append(tr.Messages, reply)
	if first {
		tr.Title = c.title(ctx, text, reply)
	}

	if err := storage.Save(ctx, c.store, storage.ChatKey(id), tr); err != nil {
		return reply, fmt.Errorf("chat: save transcript: %w", err)
	}
	return reply, nil
}

func (c *Chats) reply(ctx context.Context, history []Message, atts []Attachment) Message {
	msg := Message{ID: NewID(), Role: RoleAssistant, At: c.now()}
	if c.sender == nil || !configured(c.sender) {
		msg.Content = missingKeyReply
		return msg
	}
	content, err := c.sender.Send(ctx, slices.Clone(history), atts)
	msg.At = c.now()
	if err != nil {
		c.log.WarnContext(ctx, "chat completion failed", "err", err)
		msg.Content = ErrorText(err)
		msg.Failed = true
		return msg
	}
	msg.Content = content
	return msg
}

func (c *Chats) title(ctx context.Context, prompt string, reply Message) string {
	if t, ok := c.sender.(Titler); ok && !reply.Failed && configured(c.sender) {
		title, err := t.Title(ctx, prompt)
		if err == nil && strings.TrimSpace(title) != "" {
			return strings.TrimSpace(title)
		}
		c.log.DebugContext(ctx, "title generation failed", "err", err)
	}
	return FallbackTitle(prompt)
}

// ErrorText renders a sender failure for the transcript. Messages that do
// not already mention the API key or the provider get a hint appended.
func ErrorText(err error) string {
	text := "Failed to get a response from the assistant."
	if err != nil && err.Error() != "" {
		text = err.Error()
	}
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "api key") && !strings.Contains(lower, "provider") {
		text += guidanceSuffix
	}
	return "Error: " + text
}

// FallbackTitle trims the first prompt to a short title.
func FallbackTitle(prompt string) string {
	prompt = strings.Join(strings.Fields(prompt), " ")
	if prompt == "" {
		return "New chat"
	}
	r := []rune(prompt)
	if len(r) <= titleMaxLen {
		return prompt
	}
	return strings.TrimSpace(string(r[:titleMaxLen])) + "..."
}

func configured(s Sender) bool {
	if c, ok := s.(Configured); ok {
		return c.Configured()
	}
	return true
}
