package quizforge

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func seededGenerator(seed int64) *fallbackGenerator {
	return newFallbackGenerator(rand.New(rand.NewSource(seed)))
}

const fallbackProse = "The quick brown fox jumps over the lazy dog near the river. " +
	"Ancient castles stand silently on the green hills of Scotland. " +
	"What makes the ocean appear blue during summer afternoons? " +
	"Chemistry students often struggle with complex molecular structures."

func TestGenerateFromProse(t *testing.T) {
	got := seededGenerator(1).generate(fallbackProse, 4)
	if len(got) != 4 {
		t.Fatalf("expected 4 records, got %d", len(got))
	}
	for i, q := range got {
		if err := ValidateQuestion(q); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	if got[0].Text != "The quick brown fox jumps over the lazy dog near the river?" {
		t.Fatalf("unexpected question text %q", got[0].Text)
	}
	if got[2].Text != "What makes the ocean appear blue during summer afternoons?" {
		t.Fatalf("expected question sentence kept verbatim, got %q", got[2].Text)
	}

	// Distractors for the first record come from the other three sentences,
	// one context window each, in input order
	wantDistractors := []string{
		"Ancient castles stand",
		"What makes the ocean",
		"Chemistry students often",
	}
	for _, want := range wantDistractors {
		found := false
		for _, opt := range got[0].Options {
			if opt == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected distractor %q among %v", want, got[0].Options)
		}
	}

	// The correct option is a significant word drawn from the sentence itself
	correct := got[0].Options[got[0].CorrectAnswer]
	candidates := map[string]bool{
		"quick": true, "brown": true, "jumps": true, "over": true,
		"lazy": true, "near": true, "river": true,
	}
	if !candidates[correct] {
		t.Fatalf("correct option %q is not a word from the question sentence", correct)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first := seededGenerator(42).generate(fallbackProse, 8)
	second := seededGenerator(42).generate(fallbackProse, 8)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical output for identical seeds")
	}
}

func TestGenerateDegenerateInput(t *testing.T) {
	got := seededGenerator(7).generate("odd tiny words here now", 10)
	if len(got) != 10 {
		t.Fatalf("expected 10 records, got %d", len(got))
	}
	for i, q := range got {
		if err := ValidateQuestion(q); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if q.Text != fmt.Sprintf("Question %d related to the subject?", i+1) {
			t.Fatalf("record %d: unexpected text %q", i, q.Text)
		}
	}
}

func TestGeneratePadsShortfall(t *testing.T) {
	raw := "This particular sentence is definitely longer than thirty characters."
	got := seededGenerator(3).generate(raw, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}

	// The lone sentence cannot donate distractors to itself, so its record
	// is padded with placeholder options
	for _, want := range []string{"Option 1", "Option 2", "Option 3"} {
		found := false
		for _, opt := range got[0].Options {
			if opt == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected placeholder %q among %v", want, got[0].Options)
		}
	}

	if got[1].Text != "Question 2 related to the subject?" {
		t.Fatalf("unexpected filler text %q", got[1].Text)
	}
	if got[2].Text != "Question 3 related to the subject?" {
		t.Fatalf("unexpected filler text %q", got[2].Text)
	}
}

func TestGenerateCountZero(t *testing.T) {
	if got := seededGenerator(1).generate(fallbackProse, 0); len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestHarvestDistractors(t *testing.T) {
	t.Run("one distractor per sentence", func(t *testing.T) {
		sentences := []string{
			"Quantum computing is strange",
			"Gigantic wonderful machines process enormous datasets",
		}
		got := harvestDistractors(sentences, 0, significantWords(sentences[0]))
		want := []string{"Gigantic wonderful machines"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("stop-set suppresses question words", func(t *testing.T) {
		sentences := []string{
			"Quantum computing is strange",
			"The quantum computing strange",
		}
		got := harvestDistractors(sentences, 0, significantWords(sentences[0]))
		if len(got) != 0 {
			t.Fatalf("expected no distractors, got %v", got)
		}
	})

	t.Run("short sentences skipped", func(t *testing.T) {
		sentences := []string{"Quantum computing is strange", "Tiny little bit"}
		got := harvestDistractors(sentences, 0, significantWords(sentences[0]))
		if len(got) != 0 {
			t.Fatalf("expected no distractors from short sentences, got %v", got)
		}
	})

	t.Run("duplicate phrases rejected", func(t *testing.T) {
		sentences := []string{
			"Short one?",
			"Magnificent ancient palaces tower",
			"Magnificent ancient palaces tower",
		}
		got := harvestDistractors(sentences, 0, significantWords(sentences[0]))
		want := []string{
			"Magnificent ancient palaces",
			"Magnificent ancient palaces tower",
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})
}

func TestQuestionText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Statement.", "Statement?"},
		{"Already asked?", "Already asked?"},
		{"Mixed?!", "Mixed?"},
		{"  padded.  ", "padded?"},
	}
	for _, tc := range cases {
		if got := questionText(tc.in); got != tc.want {
			t.Fatalf("questionText(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two! Three? Four")
	want := []string{"One.", "Two!", "Three?", "Four"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := splitSentences(""); len(got) != 0 {
		t.Fatalf("expected no sentences, got %v", got)
	}

	got = splitSentences("No boundary at all")
	if len(got) != 1 || got[0] != "No boundary at all" {
		t.Fatalf("expected single sentence, got %v", got)
	}
}
