package quizforge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuizGenerator orchestrates text generation and extraction: one call asks
// the model for questions and repairs whatever comes back into exactly the
// requested number of records
type QuizGenerator struct {
	gen       TextGenerator
	extractor *Extractor
}

// NewQuizGenerator creates a quiz generator around a text generator
func NewQuizGenerator(gen TextGenerator) *QuizGenerator {
	return NewQuizGeneratorWithExtractor(gen, NewExtractor())
}

// NewQuizGeneratorWithExtractor wires a specific extractor, for callers that
// need a seeded random source or the legacy short-yield behavior
func NewQuizGeneratorWithExtractor(gen TextGenerator, extractor *Extractor) *QuizGenerator {
	return &QuizGenerator{
		gen:       gen,
		extractor: extractor,
	}
}

// GenerateQuiz generates a complete quiz with the requested number of
// questions. The model call is the only failure path; once raw text is in
// hand a full set of records is guaranteed. The transcript logger may be nil.
func (qg *QuizGenerator) GenerateQuiz(ctx context.Context, req GenerationRequest, transcript *LLMLogger) (*Quiz, error) {
	count := req.QuestionCount()
	logger.Infof("Starting quiz generation for topic: %s, target questions: %d", req.Topic, count)

	transcript.LogRequest(req)

	raw, err := qg.gen.GenerateText(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain model output: %w", err)
	}
	transcript.LogRawOutput(raw)

	questions, report := qg.extractor.ExtractDetailed(raw, count)
	transcript.LogExtraction(report, count)
	logger.Infof("Extraction complete: %s tier, %d records (%d topped up)",
		report.Tier, len(questions), report.ToppedUp)

	quiz := &Quiz{
		ID:        uuid.NewString(),
		Topic:     req.Topic,
		Questions: questions,
		CreatedAt: time.Now(),
	}
	return quiz, nil
}
