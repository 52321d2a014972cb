package quizforge

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// TextGenerator produces raw model output for a generation request. The
// output is an arbitrary untrusted string; callers run it through an
// Extractor to obtain well-formed question records.
type TextGenerator interface {
	GenerateText(ctx context.Context, req GenerationRequest) (string, error)
}

// QuestionMaker asks an OpenAI chat model for quiz questions and returns
// whatever text comes back
type QuestionMaker struct {
	client *openai.Client
	model  string
}

// NewQuestionMaker creates a question maker with an OpenAI client. An empty
// model selects GPT-4o.
func NewQuestionMaker(apiKey, model string) *QuestionMaker {
	if model == "" {
		model = openai.GPT4o
	}
	return &QuestionMaker{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GenerateText requests questions for the given topic and returns the raw
// assistant text without interpreting it
func (qm *QuestionMaker) GenerateText(ctx context.Context, req GenerationRequest) (string, error) {
	count := req.QuestionCount()
	logger.Infof("Requesting %d questions for topic: %s", count, req.Topic)

	prompt := buildPrompt(req, count)

	resp, err := qm.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: qm.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleSystem,
					Content: "You are an expert quiz question generator. " +
						"Generate high-quality multiple choice questions with exactly 4 options each " +
						"and respond with a JSON array only.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate questions: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from the model")
	}

	raw := resp.Choices[0].Message.Content
	VerboseLog("Received %d characters of model output", len(raw))
	return raw, nil
}

// buildPrompt assembles the user prompt for a generation request
func buildPrompt(req GenerationRequest, count int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate %d multiple choice questions about: %s\n\n", count, req.Topic))

	if req.SourceMaterial != "" {
		sb.WriteString("Use the following source material as reference:\n")
		sb.WriteString(req.SourceMaterial)
		sb.WriteString("\n\n")
	}

	if req.Difficulty != "" {
		sb.WriteString(fmt.Sprintf("Difficulty level: %s\n\n", req.Difficulty))
	}

	sb.WriteString("Requirements:\n")
	sb.WriteString("- Each question must have exactly 4 multiple choice options\n")
	sb.WriteString("- The correct answer should be non-obvious but clearly correct\n")
	sb.WriteString("- Incorrect options should be plausible but clearly wrong\n")
	sb.WriteString("- Questions should test understanding, not just memorization\n")
	sb.WriteString("- Avoid questions where the answer is given away in the question text\n\n")

	sb.WriteString("Respond with ONLY a JSON array in exactly this form, with no prose around it:\n")
	sb.WriteString(`[{"question": "The question text?", "options": ["first", "second", "third", "fourth"], "correctAnswer": 0}]` + "\n")
	sb.WriteString(fmt.Sprintf("The array must contain exactly %d objects. ", count))
	sb.WriteString("correctAnswer is the 0-based index of the right option.\n")

	return sb.String()
}
