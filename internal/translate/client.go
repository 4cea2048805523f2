package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"resty.dev/v3"
)

type textRequest struct {
	Text      string    `json:"text"`
	Direction Direction `json:"direction"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPClient calls /api/translate and /api/translate-image on the phrasebook server.
type HTTPClient struct {
	httpClient *resty.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	client := resty.New()
	client.SetBaseURL(baseURL)
	return &HTTPClient{
		httpClient: client,
	}
}

func (client *HTTPClient) Close() error {
	return client.httpClient.Close()
}

func (client *HTTPClient) TranslateText(ctx context.Context, text string, direction Direction) (Result, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(textRequest{Text: text, Direction: direction}).
		SetResult(&Result{}).
		SetError(&errorResponse{}).
		Post("/api/translate")
	if err != nil {
		return Result{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return Result{}, responseError(response, fmt.Sprintf("Request failed (%d)", response.StatusCode()))
	}
	result := response.Result().(*Result)
	slog.Debug("translated text", "direction", direction, "result", result)
	return *result, nil
}

func (client *HTTPClient) TranslateImage(ctx context.Context, image Image, direction Direction) (Result, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetMultipartField("image", image.FileName, image.ContentType, image.Contents).
		SetMultipartFormData(map[string]string{
			"direction": string(direction),
		}).
		SetResult(&Result{}).
		SetError(&errorResponse{}).
		Post("/api/translate-image")
	if err != nil {
		return Result{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return Result{}, responseError(response, "Image translation failed")
	}
	result := response.Result().(*Result)
	slog.Debug("translated image", "direction", direction, "result", result)
	return *result, nil
}

// responseError prefers the message the server put in the error field.
func responseError(response *resty.Response, fallback string) error {
	if body, ok := response.Error().(*errorResponse); ok && body != nil && body.Error != "" {
		return errors.New(body.Error)
	}
	return errors.New(fallback)
}
