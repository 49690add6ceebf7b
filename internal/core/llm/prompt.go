package llm

import "github.com/google/generative-ai-go/genai"

// --- OCR Model Prompts ---
const OCRSystemInstruction = `You are a professional OCR engine for official documents.
Transcribe the text in the provided image EXACTLY as written.
Do NOT paraphrase, summarize, translate, or correct the text.
Keep the original reading order, paragraph structure and line breaks.

Detect tables and return them as structured rows and cells, marking header cells with "isHeader": true.
Classify every other block as "paragraph", "heading" or "list-item".

The document may contain Arabic, English, or both.
Set "alignment" to "rtl" for blocks dominated by Arabic script and "ltr" for blocks dominated by Latin script.

Respond with a single JSON object:
{
  "blocks": [
    { "type": "paragraph" | "heading" | "list-item", "content": "text", "alignment": "rtl" | "ltr" },
    { "type": "table", "title": "optional caption", "rows": [ { "cells": [ { "content": "text", "isHeader": true } ] } ] }
  ],
  "rawText": "the full extracted text as one string"
}`

const OCRUserPrompt = "Perform professional OCR on this image. Identify all text and tables. Return ONLY JSON."

// OCRResponseSchema is the strict output contract sent with every request.
func OCRResponseSchema() *genai.Schema {
	cell := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"content":  {Type: genai.TypeString},
			"isHeader": {Type: genai.TypeBoolean},
			"colSpan":  {Type: genai.TypeInteger},
			"rowSpan":  {Type: genai.TypeInteger},
		},
		Required: []string{"content", "isHeader"},
	}

	row := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"cells": {Type: genai.TypeArray, Items: cell},
		},
		Required: []string{"cells"},
	}

	block := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"type": {
				Type:   genai.TypeString,
				Format: "enum",
				Enum:   []string{"paragraph", "heading", "list-item", "table"},
			},
			"content": {Type: genai.TypeString},
			"alignment": {
				Type:   genai.TypeString,
				Format: "enum",
				Enum:   []string{"rtl", "ltr"},
			},
			"title": {Type: genai.TypeString},
			"rows":  {Type: genai.TypeArray, Items: row},
		},
		Required: []string{"type"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"blocks":  {Type: genai.TypeArray, Items: block},
			"rawText": {Type: genai.TypeString},
		},
		Required: []string{"blocks", "rawText"},
	}
}
