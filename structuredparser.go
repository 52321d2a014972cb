package quizforge

import (
	"regexp"
	"strings"
)

// parsePhase tracks where the structured-text parser is within the current
// question record
type parsePhase int

const (
	seekQuestion parsePhase = iota // waiting for a numbered line, then its terminating '?'
	seekOptions                    // collecting lettered option lines
	seekMarker                     // options complete, watching for the correct-answer marker
)

// Line patterns for the "numbered question, lettered options, stated correct
// answer" layout. The marker pattern is the single consolidated form covering
// "Correct: B", "correct answer: B", "The correct answer is (B)" and friends.
var structuredPatterns = struct {
	numbered *regexp.Regexp
	option   *regexp.Regexp
	marker   *regexp.Regexp
}{
	numbered: regexp.MustCompile(`^\s*\d+[.)]\s*(.*)$`),
	option:   regexp.MustCompile(`(?i)^\s*([A-D])[.)]\s*(.+)$`),
	marker:   regexp.MustCompile(`(?i)\bcorrect(?:\s+answer)?(?:\s+is)?\s*[:\-]?\s*\(?(?P<letter>[A-D])\)?\b`),
}

// structuredRecord accumulates one question while the parser walks its zone
type structuredRecord struct {
	question  string
	options   [4]string // indexed by letter, A=0
	seen      [4]bool
	optCount  int
	correct   int
	hasMarker bool
}

// structuredParser is a line-walking state machine over the raw text. Each
// numbered line opens a record; the zone up to the next numbered line is
// scanned for lettered options and the correct-answer marker; a record is
// emitted only when all four option slots were filled.
type structuredParser struct {
	out     []Question
	phase   parsePhase
	pending []string // question fragments awaiting the terminating '?'
	current *structuredRecord
}

// parseStructuredText recovers question records from prose laid out as
// numbered questions with lettered options. Records are returned in input
// order; a missing correct-answer marker defaults the index to 0.
func parseStructuredText(raw string) []Question {
	p := &structuredParser{phase: seekQuestion}
	for _, line := range strings.Split(raw, "\n") {
		p.feed(line)
	}
	p.emit()
	return p.out
}

func (p *structuredParser) feed(line string) {
	// A numbered line always closes the current zone and opens a new record
	if m := structuredPatterns.numbered.FindStringSubmatch(line); m != nil {
		p.emit()
		p.beginQuestion(m[1])
		return
	}

	switch p.phase {
	case seekQuestion:
		if p.pending != nil && strings.TrimSpace(line) != "" {
			p.pending = append(p.pending, strings.TrimSpace(line))
			p.tryCompleteQuestion()
		}
	case seekOptions, seekMarker:
		p.feedZoneLine(line)
	}
}

// beginQuestion starts accumulating question text from the remainder of a
// numbered line
func (p *structuredParser) beginQuestion(remainder string) {
	p.pending = []string{strings.TrimSpace(remainder)}
	p.tryCompleteQuestion()
}

// tryCompleteQuestion checks whether the accumulated fragments contain the
// terminating '?' yet; once they do, the record opens and the zone begins
func (p *structuredParser) tryCompleteQuestion() {
	joined := strings.Join(p.pending, " ")
	cut := strings.Index(joined, "?")
	if cut < 0 {
		return
	}
	text := strings.TrimSpace(joined[:cut+1])
	if text == "" || text == "?" {
		p.pending = nil
		return
	}
	p.current = &structuredRecord{question: text}
	p.pending = nil
	p.phase = seekOptions
}

// feedZoneLine handles a line inside the options zone
func (p *structuredParser) feedZoneLine(line string) {
	if p.phase == seekOptions {
		if m := structuredPatterns.option.FindStringSubmatch(line); m != nil {
			idx := letterIndex(m[1])
			text := strings.TrimSpace(m[2])
			if text != "" && !p.current.seen[idx] {
				p.current.options[idx] = text
				p.current.seen[idx] = true
				p.current.optCount++
				if p.current.optCount == 4 {
					p.phase = seekMarker
				}
			}
			return
		}
	}

	// The marker may sit anywhere in the zone; the first hit wins
	if !p.current.hasMarker {
		if m := structuredPatterns.marker.FindStringSubmatch(line); m != nil {
			p.current.correct = letterIndex(m[1])
			p.current.hasMarker = true
		}
	}
}

// emit appends the current record if its option slots are complete, then
// resets the machine to seek the next question
func (p *structuredParser) emit() {
	if p.current != nil && p.current.optCount == 4 {
		p.out = append(p.out, Question{
			Text:          p.current.question,
			Options:       p.current.options[:],
			CorrectAnswer: p.current.correct,
		})
	}
	p.current = nil
	p.pending = nil
	p.phase = seekQuestion
}

// letterIndex maps an option letter to its index, tolerating lower case
func letterIndex(letter string) int {
	c := letter[0]
	if c >= 'a' {
		c -= 'a' - 'A'
	}
	return int(c - 'A')
}
