package quizforge

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors for question records
var (
	ErrEmptyQuestion      = errors.New("question text is empty")
	ErrOptionCount        = errors.New("question must have exactly 4 options")
	ErrEmptyOption        = errors.New("option text is empty")
	ErrCorrectAnswerRange = errors.New("correct answer index out of range")
)

// ValidateQuestion checks a question against the record invariants:
// non-empty text, exactly 4 non-empty options, correct index in [0,3]
func ValidateQuestion(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuestion
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("%w: got %d", ErrOptionCount, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d", ErrEmptyOption, i)
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
		return fmt.Errorf("%w: got %d", ErrCorrectAnswerRange, q.CorrectAnswer)
	}
	return nil
}

// sanitizeQuestion repairs a candidate record so it satisfies the option and
// index invariants. Well-formed records pass through unchanged: options are
// only truncated past 4, blank or missing options are replaced with numbered
// placeholders, and an out-of-range correct index is reset to 0. Question
// text is left untouched; callers filter empty-text candidates beforehand.
func sanitizeQuestion(q Question) Question {
	opts := q.Options
	if len(opts) > 4 {
		opts = opts[:4]
	}
	fixed := make([]string, 0, 4)
	for _, opt := range opts {
		if strings.TrimSpace(opt) == "" {
			opt = fmt.Sprintf("Option %d", len(fixed)+1)
		}
		fixed = append(fixed, opt)
	}
	for len(fixed) < 4 {
		fixed = append(fixed, fmt.Sprintf("Option %d", len(fixed)+1))
	}
	q.Options = fixed
	if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
		q.CorrectAnswer = 0
	}
	return q
}
