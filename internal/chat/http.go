package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const systemPrompt = "You are Kario, a concise assistant inside a personal task manager."

// HTTPSender talks to an OpenAI-compatible chat completions endpoint.
type HTTPSender struct {
	Endpoint string
	Model    string
	APIKey   string
	Client   *http.Client
}

func NewHTTPSender(endpoint, model, apiKey string) *HTTPSender {
	return &HTTPSender{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Model:    model,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (h *HTTPSender) Configured() bool {
	return h != nil && h.APIKey != "" && h.Endpoint != ""
}

type wireMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type wirePart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *wireImageURL `json:"image_url,omitempty"`
}

type wireImageURL struct {
	URL string `json:"url"`
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (h *HTTPSender) Send(ctx context.Context, msgs []Message, atts []Attachment) (string, error) {
	wire := []wireMessage{{Role: "system", Content: systemPrompt}}
	for i, m := range msgs {
		if m.Failed {
			continue
		}
		if i == len(msgs)-1 && m.Role == RoleUser && len(atts) > 0 {
			wire = append(wire, wireMessage{Role: string(m.Role), Content: withAttachments(m.Content, atts)})
			continue
		}
		wire = append(wire, wireMessage{Role: string(m.Role), Content: m.Content})
	}
	return h.complete(ctx, wire)
}

// Title asks the model for a short conversation title.
func (h *HTTPSender) Title(ctx context.Context, firstPrompt string) (string, error) {
	title, err := h.complete(ctx, []wireMessage{
		{Role: "system", Content: "Reply with a title of at most five words for a conversation that starts with the user's message. No quotes."},
		{Role: "user", Content: firstPrompt},
	})
	return strings.Trim(strings.TrimSpace(title), `"`), err
}

func withAttachments(text string, atts []Attachment) []wirePart {
	parts := []wirePart{{Type: "text", Text: text}}
	for _, a := range atts {
		if strings.HasPrefix(a.Content, "data:image/") {
			parts = append(parts, wirePart{Type: "image_url", ImageURL: &wireImageURL{URL: a.Content}})
			continue
		}
		parts = append(parts, wirePart{Type: "text", Text: fmt.Sprintf("Attached file %s (%s):\n%s", a.Name, a.Type, a.Content)})
	}
	return parts
}

func (h *HTTPSender) complete(ctx context.Context, msgs []wireMessage) (string, error) {
	if !h.Configured() {
		return "", errors.New("no API key configured for the chat provider")
	}
	body, err := json.Marshal(completionRequest{Model: h.Model, Messages: msgs})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.APIKey)

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	var out completionResponse
	decodeErr := json.Unmarshal(raw, &out)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("the provider rejected the API key (HTTP %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", errors.New("rate limited by the provider")
	case resp.StatusCode >= 300:
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("empty response")
	}
	return out.Choices[0].Message.Content, nil
}
