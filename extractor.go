package quizforge

import (
	"math/rand"
	"time"
)

// DefaultQuestionCount is the number of questions produced when a caller
// does not ask for a specific count
const DefaultQuestionCount = 10

// minStructuredYield is the minimum number of records the structured-text
// tier must recover before its output is accepted
const minStructuredYield = 5

// Tier identifies which extraction strategy produced a result
type Tier string

const (
	TierJSON       Tier = "json"
	TierStructured Tier = "structured"
	TierFallback   Tier = "fallback"
)

// ExtractionReport describes how a result was assembled
type ExtractionReport struct {
	Tier     Tier // tier whose records lead the result
	Yield    int  // records in the result produced by that tier
	ToppedUp int  // records appended by the fallback generator to reach count
}

// Extractor turns raw model output into well-formed question records. Three
// strategies run in order: parsing an embedded JSON array, recovering a
// numbered-question layout from prose, and synthesizing questions from the
// text's vocabulary. Data flows one way down the tiers and the result always
// has exactly the requested length.
type Extractor struct {
	rng             *rand.Rand
	allowShortYield bool
}

// NewExtractor creates an extractor with a time-seeded random source
func NewExtractor() *Extractor {
	return NewExtractorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewExtractorWithRand creates an extractor drawing randomness from r, so
// fallback behavior is reproducible under a fixed seed
func NewExtractorWithRand(r *rand.Rand) *Extractor {
	return &Extractor{rng: r}
}

// SetAllowShortYield controls what happens when the structured-text tier
// recovers at least minStructuredYield records but fewer than requested.
// When false, the default, the shortfall is topped up by the fallback
// generator; when true the short result is returned as-is.
func (e *Extractor) SetAllowShortYield(allow bool) {
	e.allowShortYield = allow
}

// Extract returns exactly count question records derived from raw. It never
// fails: any count of well-formed records is produced for any input.
func (e *Extractor) Extract(raw string, count int) []Question {
	questions, _ := e.ExtractDetailed(raw, count)
	return questions
}

// ExtractDetailed returns the records plus a report of how they were produced
func (e *Extractor) ExtractDetailed(raw string, count int) ([]Question, ExtractionReport) {
	if count < 0 {
		count = 0
	}

	if questions, ok := e.tryJSON(raw, count); ok {
		VerboseLog("extract: json tier accepted with %d records", len(questions))
		return questions, ExtractionReport{Tier: TierJSON, Yield: len(questions)}
	}

	structured := e.tryStructured(raw)
	if len(structured) >= minStructuredYield {
		if len(structured) >= count {
			VerboseLog("extract: structured tier accepted with %d records", count)
			return structured[:count], ExtractionReport{Tier: TierStructured, Yield: count}
		}
		if e.allowShortYield {
			VerboseLog("extract: structured tier accepted short, %d of %d records", len(structured), count)
			return structured, ExtractionReport{Tier: TierStructured, Yield: len(structured)}
		}
		topUp := newFallbackGenerator(e.rng).generate(raw, count-len(structured))
		VerboseLog("extract: structured tier yielded %d, topped up %d", len(structured), len(topUp))
		return append(structured, topUp...), ExtractionReport{
			Tier:     TierStructured,
			Yield:    len(structured),
			ToppedUp: len(topUp),
		}
	}

	questions := newFallbackGenerator(e.rng).generate(raw, count)
	VerboseLog("extract: fallback tier produced %d records", len(questions))
	return questions, ExtractionReport{Tier: TierFallback, Yield: len(questions)}
}

// tryJSON runs the JSON tier with panics contained; a contained panic counts
// as an insufficient yield so control degrades to the next tier
func (e *Extractor) tryJSON(raw string, count int) (questions []Question, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			VerboseLog("extract: json tier panic contained: %v", r)
			questions, ok = nil, false
		}
	}()
	return extractJSONQuestions(raw, count)
}

// tryStructured runs the structured-text tier with the same containment
func (e *Extractor) tryStructured(raw string) (questions []Question) {
	defer func() {
		if r := recover(); r != nil {
			VerboseLog("extract: structured tier panic contained: %v", r)
			questions = nil
		}
	}()
	return parseStructuredText(raw)
}
