package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/chat"
)

// Chat sends a text query to the assistant and returns its reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var out struct {
		Response string `json:"response"`
	}
	in := map[string]string{"message": message}
	if err := c.postJSON(ctx, "/chat", in, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// ChatImage sends an image with an optional accompanying message as a
// multipart form and returns the assistant reply.
func (c *Client) ChatImage(ctx context.Context, image chat.Attachment, message string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	name := image.Name
	if name == "" {
		name = "capture.jpg"
	}
	part, err := writer.CreateFormFile("image", name)
	if err != nil {
		return "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return "", fmt.Errorf("write image part: %w", err)
	}
	if err := writer.WriteField("message", message); err != nil {
		return "", fmt.Errorf("write message field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", writer.FormDataContentType())

	data, _, err := c.do(ctx, http.MethodPost, "/chat/image", &body, headers)
	if err != nil {
		return "", err
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := decode(data, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// Translate converts text between the two supported languages.
func (c *Client) Translate(ctx context.Context, text string, from, to i18n.Language) (string, error) {
	var out struct {
		TranslatedText string `json:"translatedText"`
	}
	in := map[string]string{
		"text": text,
		"from": string(from),
		"to":   string(to),
	}
	if err := c.postJSON(ctx, "/translate", in, &out); err != nil {
		return "", err
	}
	return out.TranslatedText, nil
}

// Synthesize requests spoken audio for text and returns the raw payload
// together with its content type.
func (c *Client) Synthesize(ctx context.Context, text string, language i18n.Language) ([]byte, string, error) {
	in := map[string]string{
		"text":     text,
		"language": string(language),
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, "", fmt.Errorf("encode tts request: %w", err)
	}
	data, contentType, err := c.do(ctx, http.MethodPost, "/tts", bytes.NewReader(payload), nil)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("tts: empty audio payload")
	}
	return data, contentType, nil
}
