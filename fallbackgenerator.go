package quizforge

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// Sentence boundary: terminator followed by whitespace
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// trailingPunct is stripped from harvested phrases and answer words
const trailingPunct = ".,!?;:"

// fallbackGenerator synthesizes question records from the vocabulary of
// arbitrary text when no exploitable structure exists. All randomness comes
// from the injected source so behavior is reproducible under a fixed seed.
type fallbackGenerator struct {
	rng *rand.Rand
}

func newFallbackGenerator(rng *rand.Rand) *fallbackGenerator {
	return &fallbackGenerator{rng: rng}
}

// generate produces exactly count records. Question-worthy sentences are
// turned into records with distractors harvested from the other sentences;
// if the text runs out, generic placeholder records fill the remainder.
func (g *fallbackGenerator) generate(raw string, count int) []Question {
	sentences := splitSentences(raw)

	out := make([]Question, 0, count)
	for i, sentence := range sentences {
		if len(out) == count {
			break
		}
		if !questionWorthy(sentence) {
			continue
		}
		out = append(out, g.buildQuestion(sentence, i, sentences))
	}

	for len(out) < count {
		out = append(out, g.placeholderQuestion(len(out)+1))
	}
	return out
}

// buildQuestion assembles one record around a question-worthy sentence
func (g *fallbackGenerator) buildQuestion(sentence string, self int, sentences []string) Question {
	stop := significantWords(sentence)
	distractors := harvestDistractors(sentences, self, stop)

	// Pad to 3 distractors with literal placeholders
	for i := 1; len(distractors) < 3; i++ {
		distractors = append(distractors, fmt.Sprintf("Option %d", i))
	}

	correct := g.pickCorrectPhrase(sentence)
	pos := g.rng.Intn(4)

	options := make([]string, 0, 4)
	options = append(options, distractors[:pos]...)
	options = append(options, correct)
	options = append(options, distractors[pos:]...)

	return Question{
		Text:    questionText(sentence),
		Options: options,
		// The insertion position is the answer index; it is never recovered
		// by searching the option list, so a duplicate phrase cannot skew it
		CorrectAnswer: pos,
	}
}

// pickCorrectPhrase draws a random significant word from the question
// sentence itself, or a placeholder when the sentence has none
func (g *fallbackGenerator) pickCorrectPhrase(sentence string) string {
	var candidates []string
	for _, word := range strings.Fields(sentence) {
		word = strings.TrimRight(word, trailingPunct)
		if len(word) >= 4 {
			candidates = append(candidates, word)
		}
	}
	if len(candidates) == 0 {
		return "Option 4"
	}
	return candidates[g.rng.Intn(len(candidates))]
}

// placeholderQuestion is the terminal filler when sentences are exhausted
func (g *fallbackGenerator) placeholderQuestion(k int) Question {
	return Question{
		Text:          fmt.Sprintf("Question %d related to the subject?", k),
		Options:       []string{"Option 1", "Option 2", "Option 3", "Option 4"},
		CorrectAnswer: g.rng.Intn(4),
	}
}

// harvestDistractors scans the other sentences for context-window phrases
// around significant words that do not appear in the question sentence. At
// most one distractor is taken per sentence; scanning stops at 3.
func harvestDistractors(sentences []string, self int, stop map[string]bool) []string {
	var distractors []string
	chosen := make(map[string]bool)

	for i, sentence := range sentences {
		if len(distractors) == 3 {
			break
		}
		if i == self || len(sentence) <= 15 {
			continue
		}
		words := strings.Fields(sentence)
		for wi, word := range words {
			if len(word) <= 4 || stop[strings.ToLower(word)] {
				continue
			}
			lo := wi - 2
			if lo < 0 {
				lo = 0
			}
			hi := wi + 3
			if hi > len(words) {
				hi = len(words)
			}
			phrase := strings.TrimRight(strings.Join(words[lo:hi], " "), trailingPunct)
			if len(phrase) > 5 && !chosen[phrase] {
				distractors = append(distractors, phrase)
				chosen[phrase] = true
				break
			}
		}
	}
	return distractors
}

// significantWords builds the stop-set of a sentence's own longer words,
// lower-cased, so distractors never trivially repeat the question
func significantWords(sentence string) map[string]bool {
	stop := make(map[string]bool)
	for _, word := range strings.Fields(sentence) {
		if len(word) > 4 {
			stop[strings.ToLower(word)] = true
		}
	}
	return stop
}

// questionWorthy reports whether a sentence can anchor a question record
func questionWorthy(sentence string) bool {
	return strings.Contains(sentence, "?") || len(sentence) > 30
}

// questionText normalizes a sentence into question form, ending with '?'
func questionText(sentence string) string {
	return strings.TrimRight(strings.TrimSpace(sentence), ".!?") + "?"
}

// splitSentences cuts text on '.', '!' or '?' followed by whitespace, keeping
// the terminator with its sentence. Empty segments are dropped.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		segment := strings.TrimSpace(text[start : loc[0]+1])
		if segment != "" {
			sentences = append(sentences, segment)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
