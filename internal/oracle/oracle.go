// Package oracle wraps the chat-completion service that drives the
// conversational survey: given the transcript so far and the fields still to
// collect, it returns the next prompt plus any structured values it extracted.
// Fields the student has not answered yet are simply omitted from the result,
// never returned as empty strings or zeros.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

const defaultModel = "claude-sonnet-4-5-20250929"

// Turn is one exchange in the survey conversation.
type Turn struct {
	Role string `json:"role"` // "assistant" or "student"
	Text string `json:"text"`
}

// FieldSpec describes one record field still to collect.
type FieldSpec struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
	Kind   string `json:"kind"` // "rating" or "text"
}

// TurnResult is the oracle's answer: the next thing to say plus whatever
// fields the transcript already pins down.
type TurnResult struct {
	Reply  string            `json:"reply"`
	Fields map[string]string `json:"fields"`
	Done   bool              `json:"done"`
}

type Client struct {
	api    anthropic.Client
	model  string
	logger *zap.Logger
}

// New builds an oracle client. An empty model selects the default.
func New(apiKey, model string, logger *zap.Logger) *Client {
	if model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		api:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		logger: logger.Named("oracle"),
	}
}

const nextTurnSystem = `You run a short feedback conversation with a language-school student.
You are given the transcript so far and the survey fields still missing.
Reply with JSON only: {"reply": "<next message to the student>", "fields": {"<name>": "<value>"}, "done": <bool>}.
Include a field in "fields" only when the transcript clearly answers it; rating values are the digit as a string.
Set "done" true once every field is collected. Comments must be recorded in English, translating if needed.`

// NextTurn asks the oracle for the next prompt and any newly-extracted
// field values.
func (c *Client) NextTurn(ctx context.Context, transcript []Turn, missing []FieldSpec) (TurnResult, error) {
	payload := struct {
		Transcript []Turn      `json:"transcript"`
		Missing    []FieldSpec `json:"missing"`
	}{Transcript: transcript, Missing: missing}
	userPrompt, err := json.Marshal(payload)
	if err != nil {
		return TurnResult{}, fmt.Errorf("marshal oracle request: %w", err)
	}

	raw, err := c.complete(ctx, nextTurnSystem, string(userPrompt))
	if err != nil {
		return TurnResult{}, err
	}

	result, err := ParseTurnResult(raw)
	if err != nil {
		return TurnResult{}, err
	}
	c.logger.Debug("oracle turn",
		zap.Int("fields", len(result.Fields)),
		zap.Bool("done", result.Done))
	return result, nil
}

const translateSystem = `Translate the student comment to natural English.
Reply with the translation only, no commentary. If the text is already English, return it unchanged.`

// TranslateToEnglish converts a captured comment to English before it is
// stored; the clustering layer only handles English text.
func (c *Client) TranslateToEnglish(ctx context.Context, text, sourceLang string) (string, error) {
	prompt := text
	if sourceLang != "" {
		prompt = fmt.Sprintf("(%s) %s", sourceLang, text)
	}
	raw, err := c.complete(ctx, translateSystem, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	message, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("oracle request: %w", err)
	}
	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in oracle response")
}

// ParseTurnResult extracts the JSON object from a raw completion, tolerating
// surrounding prose or code fences.
func ParseTurnResult(raw string) (TurnResult, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return TurnResult{}, fmt.Errorf("no JSON object in oracle response")
	}
	var result TurnResult
	if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
		return TurnResult{}, fmt.Errorf("decode oracle response: %w", err)
	}
	return result, nil
}
