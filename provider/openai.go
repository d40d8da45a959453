package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ZaguanLabs/i18nsync"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI's API or any
// OpenAI-compatible endpoint.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)

	Timeout time.Duration // HTTP timeout per request (0 = none)
}

// userAgentTransport identifies the tool to the translation endpoint.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", i18nsync.UserAgent())
	return t.base.RoundTrip(req)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: userAgentTransport{base: http.DefaultTransport},
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Model returns the model name, used to namespace cache entries.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Translate translates a single dictionary text.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if _, err := i18nsync.ParseLanguage(req.TargetLang); err != nil {
		return "", &i18nsync.UnsupportedLanguageError{Lang: req.TargetLang, Cause: err}
	}
	if req.Text == "" {
		return "", nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: p.buildUserMessage(req)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &i18nsync.ProviderError{
			Message:   "chat completion request failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &i18nsync.ProviderError{
			Message:   "chat completion returned no choices",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content)
}

const systemPrompt = `You localize the user interface of a website from %[1]s to %[2]s.

The user sends one JSON object: "text" is the string shown on the page and
"key", when present, is its dictionary key. The key describes where the text
is used; read it for context and leave it out of the answer.

Rules:
1. Write natural %[2]s as a native speaker would, not a word-for-word rendering.
2. Labels, buttons and headings must stay about as short as the source.
3. Copy markup, URLs, e-mail addresses and placeholders such as {{name}}, {count}, %%s or $1 unchanged.
4. Keep the capitalisation style and trailing punctuation of the source.

Answer with a JSON object and nothing else: {"translation": "..."}`

func (p *OpenAIProvider) buildSystemPrompt(req TranslateRequest) string {
	source := req.SourceLang
	if source == "" {
		source = i18nsync.DefaultSourceLang
	}
	return fmt.Sprintf(systemPrompt, i18nsync.GetLanguageName(source), i18nsync.GetLanguageName(req.TargetLang))
}

// userMessage is the payload of the user turn.
type userMessage struct {
	Key  string `json:"key,omitempty"`
	Text string `json:"text"`
}

func (p *OpenAIProvider) buildUserMessage(req TranslateRequest) string {
	b, _ := json.Marshal(userMessage{Key: req.Key, Text: req.Text})
	return string(b)
}

// parseResponse accepts {"translation": ...}, an object holding exactly one
// string under another name, or a bare JSON string. Markdown code fences
// around any of these are ignored.
func (p *OpenAIProvider) parseResponse(content string) (string, error) {
	raw := []byte(stripFences(content))

	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) == nil {
		if v, ok := fields["translation"]; ok {
			var s string
			if json.Unmarshal(v, &s) == nil {
				return s, nil
			}
		}
		var only []string
		for _, v := range fields {
			var s string
			if json.Unmarshal(v, &s) == nil {
				only = append(only, s)
			}
		}
		if len(only) == 1 {
			return only[0], nil
		}
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s, nil
	}

	return "", &i18nsync.ProviderError{
		Message: fmt.Sprintf("unexpected reply from model %s: %.80q", p.model, content),
	}
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
