package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/phrasebook/internal/inference"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

// Message content is either a string or a list of ContentPart
type Message struct {
	Role    Role `json:"role"`
	Content any  `json:"content"`
}

type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

const systemPrompt = `You are a translator for travellers in Arabic-speaking countries.
Translate between English and Modern Standard Arabic as it is spoken in everyday situations.

OUTPUT FORMAT (JSON only):
{
  "arabic": "<the phrase in Arabic script>",
  "english": "<the phrase in English>",
  "transliteration": "<the Arabic in Latin letters, e.g. shukran jazeelan>"
}

RULES:
- Always fill all three fields, whichever language the input is in.
- Keep the register of the input: a polite request stays polite.
- Use common, short phrasings a local would understand.
- Do NOT include any text outside the JSON.`

func directionInstruction(direction inference.Direction) string {
	if direction == inference.DirectionArToEn {
		return "Translate this Arabic into English."
	}
	return "Translate this English into Arabic."
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// 5xx and rate limiting
	if strings.Contains(errStr, "response error 5") || strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// Translate implements the inference.Client interface
func (client *Client) Translate(
	ctx context.Context,
	params inference.TranslateRequest,
) (inference.Translation, error) {
	requestBody := client.newRequest(
		Message{Role: RoleUser, Content: directionInstruction(params.Direction) + "\n\n" + params.Text},
	)
	return client.complete(ctx, requestBody)
}

// TranslateImage sends the photo inline as a base64 data URL
func (client *Client) TranslateImage(
	ctx context.Context,
	params inference.ImageTranslateRequest,
) (inference.Translation, error) {
	if len(params.Contents) == 0 {
		return inference.Translation{}, fmt.Errorf("empty image")
	}
	dataURL := "data:" + params.ContentType + ";base64," + base64.StdEncoding.EncodeToString(params.Contents)

	requestBody := client.newRequest(Message{
		Role: RoleUser,
		Content: []ContentPart{
			{
				Type: "text",
				Text: directionInstruction(params.Direction) + " Read the main text in the image. If there is no text, describe the pictured object in a short phrase.",
			},
			{
				Type:     "image_url",
				ImageURL: &ImageURL{URL: dataURL},
			},
		},
	})
	return client.complete(ctx, requestBody)
}

func (client *Client) newRequest(userMessage Message) ChatCompletionRequest {
	return ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.2,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			userMessage,
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}
}

func (client *Client) complete(ctx context.Context, requestBody ChatCompletionRequest) (inference.Translation, error) {
	var result inference.Translation
	if err := retry.Do(
		func() error {
			response, err := client.chatCompletion(ctx, requestBody)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.Translation{}, err
	}
	return result, nil
}

func (client *Client) chatCompletion(
	ctx context.Context,
	requestBody ChatCompletionRequest,
) (inference.Translation, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return inference.Translation{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return inference.Translation{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return inference.Translation{}, fmt.Errorf("empty response body or choices")
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return inference.Translation{}, fmt.Errorf("empty response content")
	}
	slog.Default().Debug("openai response content",
		"model", requestBody.Model,
		"content", content,
		"usage", responseBody.Usage,
	)

	var decoded inference.Translation
	if err := json.Unmarshal([]byte(extractJSONObject(content)), &decoded); err != nil {
		return inference.Translation{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	decoded.Arabic = strings.TrimSpace(decoded.Arabic)
	decoded.English = strings.TrimSpace(decoded.English)
	decoded.Transliteration = strings.TrimSpace(decoded.Transliteration)
	if decoded.Arabic == "" && decoded.English == "" {
		return inference.Translation{}, fmt.Errorf("json.Unmarshal(%s) > no translation in the response", content)
	}
	return decoded, nil
}

// extractJSONObject returns the first complete JSON object in content,
// skipping code fences or prose around it. Braces inside strings are ignored.
func extractJSONObject(content string) string {
	start := -1
	depth := 0
	inString := false
	escapeNext := false

	for i, ch := range content {
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start == -1 {
				continue
			}
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}
	return content
}
