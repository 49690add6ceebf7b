package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"
)

func TestConfigureRequestsLiteralJSON(t *testing.T) {
	g := NewGeminiOCR("key", "", 0.1)
	require.Equal(t, "gemini-1.5-pro", g.modelName)

	m := g.configure(&genai.GenerativeModel{})

	require.NotNil(t, m.SystemInstruction)
	require.Len(t, m.SystemInstruction.Parts, 1)
	require.Equal(t, genai.Text(OCRSystemInstruction), m.SystemInstruction.Parts[0])
	require.NotNil(t, m.Temperature)
	require.InDelta(t, 0.1, *m.Temperature, 1e-6)
	require.Equal(t, "application/json", m.ResponseMIMEType)
	require.NotNil(t, m.ResponseSchema)
}

func TestResponseSchemaShape(t *testing.T) {
	s := OCRResponseSchema()

	require.Equal(t, genai.TypeObject, s.Type)
	require.ElementsMatch(t, []string{"blocks", "rawText"}, s.Required)

	block := s.Properties["blocks"].Items
	require.NotNil(t, block)
	require.ElementsMatch(t, []string{"paragraph", "heading", "list-item", "table"}, block.Properties["type"].Enum)
	require.ElementsMatch(t, []string{"rtl", "ltr"}, block.Properties["alignment"].Enum)

	cell := block.Properties["rows"].Items.Properties["cells"].Items
	require.Equal(t, genai.TypeBoolean, cell.Properties["isHeader"].Type)
	require.Equal(t, genai.TypeInteger, cell.Properties["colSpan"].Type)
	require.Equal(t, genai.TypeInteger, cell.Properties["rowSpan"].Type)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text(`{"blocks":[],`),
				genai.Text(`"rawText":""}`),
			}},
		}},
	}

	text, err := responseText(resp)
	require.NoError(t, err)
	require.Equal(t, `{"blocks":[],"rawText":""}`, text)
}

func TestResponseTextEmpty(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	require.ErrorIs(t, err, ErrEmptyResponse)

	_, err = responseText(nil)
	require.ErrorIs(t, err, ErrEmptyResponse)

	blocked := &genai.GenerateContentResponse{
		PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
	}
	_, err = responseText(blocked)
	require.Error(t, err)
	require.Contains(t, err.Error(), "blocked")

	whitespace := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text("  ")}}}},
	}
	_, err = responseText(whitespace)
	require.ErrorIs(t, err, ErrEmptyResponse)
}
