package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// maxPromptChars caps the CV text sent to the model.
const maxPromptChars = 20000

var ErrLLMDisabled = errors.New("AI extraction is not configured")

type LLMService struct {
	Client llms.Model
}

// NewLLMService initializes the Gemini client. An empty key yields a service whose
// calls fail with ErrLLMDisabled, so the rest of the API can still start.
func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	if apiKey == "" {
		log.Println("⚠️  GEMINI_API_KEY is empty, CV extraction disabled")
		return &LLMService{}, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

const cvExtractionPrompt = `
You are an expert CV Data Extraction Agent. Your task is to analyze the plain text of an uploaded CV (résumé) and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the candidate's details, work history and education.
2. **Ignore** page numbers, headers/footers and decorative text.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.
5. **Dates** use "YYYY-MM" when the month is known, "YYYY" otherwise, and "Present" for ongoing roles.

### OUTPUT SCHEMA:
{
    "full_name": "Candidate name",
    "title": "Headline or current job title",
    "email": "Email address",
    "phone": "Phone number",
    "location": "City, Country",
    "summary": "Short professional summary",
    "experiences": [{"role": "", "company": "", "location": "", "start_date": "", "end_date": "", "description": ""}],
    "education": [{"degree": "", "school": "", "start_date": "", "end_date": "", "description": ""}],
    "skills": ["Array", "of", "skills"]
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// ExtractCVDetails turns CV plain text into the JSON described by cvExtractionPrompt.
func (s *LLMService) ExtractCVDetails(ctx context.Context, text string) (string, error) {
	if s.Client == nil {
		return "", ErrLLMDisabled
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(cvExtractionPrompt, text))
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return stripCodeFence(resp), nil
}

// stripCodeFence removes a ```json fence the model sometimes adds anyway.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
