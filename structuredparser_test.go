package quizforge

import (
	"fmt"
	"strings"
	"testing"
)

// numberedQuiz renders n questions in the conventional numbered layout, each
// followed by the given correct-answer marker line when non-empty
func numberedQuiz(n int, marker string) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "%d. What is item number %d?\n", i, i)
		sb.WriteString("A. First choice\n")
		sb.WriteString("B. Second choice\n")
		sb.WriteString("C. Third choice\n")
		sb.WriteString("D. Fourth choice\n")
		if marker != "" {
			sb.WriteString(marker + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestParseStructuredTextRecovery(t *testing.T) {
	got := parseStructuredText(numberedQuiz(6, "Correct: B"))
	if len(got) != 6 {
		t.Fatalf("expected 6 records, got %d", len(got))
	}
	for i, q := range got {
		if q.Text != fmt.Sprintf("What is item number %d?", i+1) {
			t.Fatalf("record %d: unexpected text %q", i, q.Text)
		}
		if q.CorrectAnswer != 1 {
			t.Fatalf("record %d: expected index 1, got %d", i, q.CorrectAnswer)
		}
		if q.Options[0] != "First choice" || q.Options[3] != "Fourth choice" {
			t.Fatalf("record %d: unexpected options %v", i, q.Options)
		}
		if err := ValidateQuestion(q); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
}

func TestParseStructuredTextMarkerPhrasings(t *testing.T) {
	cases := []struct {
		name   string
		marker string
		want   int
	}{
		{"short colon form", "Correct: A", 0},
		{"short lowercase", "correct: a", 0},
		{"answer colon form", "Correct Answer: C", 2},
		{"prose form", "The correct answer is D", 3},
		{"parenthesized", "The correct answer is (B).", 1},
		{"dash form", "Correct answer - c", 2},
		{"no marker defaults to first", "", 0},
		{"incorrect does not match", "These answers are incorrect because D", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseStructuredText(numberedQuiz(1, tc.marker))
			if len(got) != 1 {
				t.Fatalf("expected 1 record, got %d", len(got))
			}
			if got[0].CorrectAnswer != tc.want {
				t.Fatalf("expected index %d, got %d", tc.want, got[0].CorrectAnswer)
			}
		})
	}
}

func TestParseStructuredTextLetterSlots(t *testing.T) {
	t.Run("options captured in letter order", func(t *testing.T) {
		raw := "1. Which comes first?\n" +
			"B. two\n" +
			"A. one\n" +
			"D. four\n" +
			"C. three\n" +
			"Correct: A\n"
		got := parseStructuredText(raw)
		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
		want := []string{"one", "two", "three", "four"}
		for i, opt := range want {
			if got[0].Options[i] != opt {
				t.Fatalf("option %d: expected %q, got %v", i, opt, got[0].Options)
			}
		}
	})

	t.Run("duplicate letters keep first occurrence", func(t *testing.T) {
		raw := "1. Which A wins?\n" +
			"A. first\n" +
			"A. shadow\n" +
			"B. two\n" +
			"C. three\n" +
			"D. four\n"
		got := parseStructuredText(raw)
		if len(got) != 1 || got[0].Options[0] != "first" {
			t.Fatalf("expected first A to win, got %+v", got)
		}
	})

	t.Run("lowercase letters accepted", func(t *testing.T) {
		raw := "1. Lower case layout?\n" +
			"a. one\nb. two\nc. three\nd. four\ncorrect: d\n"
		got := parseStructuredText(raw)
		if len(got) != 1 || got[0].CorrectAnswer != 3 {
			t.Fatalf("expected lowercase record with index 3, got %+v", got)
		}
	})

	t.Run("three options rejected", func(t *testing.T) {
		raw := "1. Not enough options?\nA. one\nB. two\nC. three\n"
		if got := parseStructuredText(raw); len(got) != 0 {
			t.Fatalf("expected rejection, got %+v", got)
		}
	})
}

func TestParseStructuredTextBoundaries(t *testing.T) {
	t.Run("multi-line question text", func(t *testing.T) {
		raw := "1. Which of\nthe following\nis best?\n" +
			"A. one\nB. two\nC. three\nD. four\n"
		got := parseStructuredText(raw)
		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
		if got[0].Text != "Which of the following is best?" {
			t.Fatalf("unexpected question text %q", got[0].Text)
		}
	})

	t.Run("parenthesis numbering", func(t *testing.T) {
		raw := "1) Paren style?\nA) one\nB) two\nC) three\nD) four\nCorrect: C\n"
		got := parseStructuredText(raw)
		if len(got) != 1 || got[0].CorrectAnswer != 2 {
			t.Fatalf("expected paren-style record, got %+v", got)
		}
	})

	t.Run("numbered line without question mark abandoned", func(t *testing.T) {
		raw := "1. This line never terminates\n" +
			"2. But this one does?\n" +
			"A. one\nB. two\nC. three\nD. four\nCorrect: B\n"
		got := parseStructuredText(raw)
		if len(got) != 1 || got[0].Text != "But this one does?" {
			t.Fatalf("expected only the terminated question, got %+v", got)
		}
	})

	t.Run("record at end of input emitted", func(t *testing.T) {
		raw := "1. Final question?\nA. one\nB. two\nC. three\nD. four\nCorrect: D"
		got := parseStructuredText(raw)
		if len(got) != 1 || got[0].CorrectAnswer != 3 {
			t.Fatalf("expected trailing record, got %+v", got)
		}
	})

	t.Run("letters beyond D ignored", func(t *testing.T) {
		raw := "1. Extra letters?\nA. one\nB. two\nC. three\nD. four\nE. five\nCorrect: A\n"
		got := parseStructuredText(raw)
		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
		for _, opt := range got[0].Options {
			if opt == "five" {
				t.Fatalf("expected E option ignored, got %v", got[0].Options)
			}
		}
	})

	t.Run("plain prose yields nothing", func(t *testing.T) {
		raw := "No numbered layout here. Just a paragraph of text about nothing."
		if got := parseStructuredText(raw); len(got) != 0 {
			t.Fatalf("expected no records, got %+v", got)
		}
	})
}
