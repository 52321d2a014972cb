package quizforge

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// fakeTextGenerator returns canned model output without a network call
type fakeTextGenerator struct {
	output  string
	err     error
	calls   int
	lastReq GenerationRequest
}

func (f *fakeTextGenerator) GenerateText(_ context.Context, req GenerationRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func TestGenerateQuizFromModelOutput(t *testing.T) {
	want := sampleQuestions(10)
	gen := &fakeTextGenerator{output: embedInProse(t, want)}
	qg := NewQuizGenerator(gen)

	quiz, err := qg.GenerateQuiz(context.Background(), GenerationRequest{Topic: "Arithmetic", NumQuestions: 10}, nil)
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}

	if quiz.ID == "" {
		t.Error("expected a quiz ID")
	}
	if quiz.Topic != "Arithmetic" {
		t.Errorf("expected topic Arithmetic, got %q", quiz.Topic)
	}
	if quiz.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}
	if !reflect.DeepEqual(quiz.Questions, want) {
		t.Errorf("expected the embedded questions back verbatim, got %+v", quiz.Questions)
	}
	if gen.calls != 1 {
		t.Errorf("expected one model call, got %d", gen.calls)
	}
}

func TestGenerateQuizModelError(t *testing.T) {
	modelErr := errors.New("rate limited")
	gen := &fakeTextGenerator{err: modelErr}
	qg := NewQuizGenerator(gen)

	quiz, err := qg.GenerateQuiz(context.Background(), GenerationRequest{Topic: "History"}, nil)
	if err == nil {
		t.Fatal("expected an error when the model call fails")
	}
	if !errors.Is(err, modelErr) {
		t.Errorf("expected error to wrap the model error, got %v", err)
	}
	if quiz != nil {
		t.Errorf("expected no quiz on failure, got %+v", quiz)
	}
}

func TestGenerateQuizGarbageOutput(t *testing.T) {
	gen := &fakeTextGenerator{output: "%%% nothing quiz-shaped here %%%"}
	qg := NewQuizGenerator(gen)

	// NumQuestions unset falls back to the default count
	quiz, err := qg.GenerateQuiz(context.Background(), GenerationRequest{Topic: "Chaos"}, nil)
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}
	if len(quiz.Questions) != DefaultQuestionCount {
		t.Fatalf("expected %d questions, got %d", DefaultQuestionCount, len(quiz.Questions))
	}
	for i, q := range quiz.Questions {
		if err := ValidateQuestion(q); err != nil {
			t.Errorf("question %d invalid: %v", i, err)
		}
	}
}

func TestGenerateQuizSeededExtractor(t *testing.T) {
	const garbage = "static hum on the wire and little else worth keeping around here."

	build := func() *Quiz {
		gen := &fakeTextGenerator{output: garbage}
		extractor := NewExtractorWithRand(rand.New(rand.NewSource(42)))
		qg := NewQuizGeneratorWithExtractor(gen, extractor)
		quiz, err := qg.GenerateQuiz(context.Background(), GenerationRequest{Topic: "Noise", NumQuestions: 5}, nil)
		if err != nil {
			t.Fatalf("GenerateQuiz failed: %v", err)
		}
		return quiz
	}

	first := build()
	second := build()
	if !reflect.DeepEqual(first.Questions, second.Questions) {
		t.Error("expected identical questions under the same seed")
	}
}
