package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Generator produces stub thread content for the ai-generated source.
type Generator interface {
	// GenerateThread writes a short fictional drama thread about the topic,
	// returning a title and a body.
	GenerateThread(ctx context.Context, topic, persona string) (title, body string, err error)
}

// VoiceWriter rewrites narrative paragraphs in a persona's voice. The
// transform stage uses it when configured and falls back to template prose
// when it is absent or fails.
type VoiceWriter interface {
	RewriteParagraph(ctx context.Context, persona, paragraph string) (string, error)
}

// OpenAIClient implements Generator and VoiceWriter on the Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{client: c, model: model}
}

func (o *OpenAIClient) GenerateThread(ctx context.Context, topic, persona string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	sys := fmt.Sprintf(`
		Write a short fictional social-media drama thread about the given topic.
		Voice: %s.
		Return the thread title on the first line, then a blank line, then 3-5 paragraphs of body.
		Keep it punchy and believable; no hashtags, no links.
		`, personaOrDefault(persona))
	out, err := o.create(ctx, sys, "Topic: "+topic)
	if err != nil {
		slog.Error("openai: generate thread error", "err", err)
		return "", "", err
	}
	title, body, ok := strings.Cut(strings.TrimSpace(out), "\n")
	if !ok {
		return strings.TrimSpace(out), "", nil
	}
	return strings.TrimSpace(title), strings.TrimSpace(body), nil
}

func (o *OpenAIClient) RewriteParagraph(ctx context.Context, persona, paragraph string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	paragraph = strings.TrimSpace(paragraph)
	if paragraph == "" {
		return "", nil
	}
	if len([]rune(paragraph)) > 1500 {
		paragraph = string([]rune(paragraph)[:1500])
	}
	sys := fmt.Sprintf(`
		Rewrite the paragraph in the voice of %s.
		Keep every fact intact; change tone and phrasing only.
		Return the rewritten paragraph as plain text, 1-4 sentences, no preamble.
		`, personaOrDefault(persona))
	out, err := o.create(ctx, sys, paragraph)
	if err != nil {
		slog.Error("openai: rewrite paragraph error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string) (string, error) {
	// Default timeout guard, if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 120*time.Second)
		defer cancel()
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func personaOrDefault(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "a dry, witty internet narrator"
	}
	return p
}
