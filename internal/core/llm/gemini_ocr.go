package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/markdave123-py/VisionOCR/internal/core"
	"github.com/markdave123-py/VisionOCR/internal/models"
)

var ErrEmptyResponse = errors.New("gemini returned no content")

// GeminiOCR implements core.Recognizer on top of the Gemini API.
type GeminiOCR struct {
	apiKey      string
	modelName   string
	temperature float32
}

func NewGeminiOCR(apiKey, modelName string, temperature float32) *GeminiOCR {
	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}
	return &GeminiOCR{apiKey: apiKey, modelName: modelName, temperature: temperature}
}

// Recognize issues exactly one GenerateContent call. A client is created per
// call so a missing or bad key fails that call only.
func (g *GeminiOCR) Recognize(ctx context.Context, data []byte, mimeType string) (*models.Payload, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	defer client.Close()

	m := g.configure(client.GenerativeModel(g.modelName))

	// genai.Blob is base64-encoded by the client when serialized.
	resp, err := m.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(OCRUserPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	return models.ParsePayload([]byte(text))
}

func (g *GeminiOCR) configure(m *genai.GenerativeModel) *genai.GenerativeModel {
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(OCRSystemInstruction)},
	}
	m.SetTemperature(g.temperature)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = OCRResponseSchema()
	return m
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

var _ core.Recognizer = (*GeminiOCR)(nil)
