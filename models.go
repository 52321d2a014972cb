package quizforge

import "time"

// Question represents a single multiple-choice quiz question
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`       // always exactly 4
	CorrectAnswer int      `json:"correctAnswer"` // 0-based index into Options
}

// Quiz represents a complete quiz with metadata
type Quiz struct {
	ID        string     `json:"id"`
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// GenerationRequest represents a request to generate questions
type GenerationRequest struct {
	Topic          string `json:"topic"`
	NumQuestions   int    `json:"num_questions"`
	SourceMaterial string `json:"source_material,omitempty"`
	Difficulty     string `json:"difficulty,omitempty"`
}

// QuestionCount returns the requested number of questions, applying the
// default when the request leaves it unset
func (req GenerationRequest) QuestionCount() int {
	if req.NumQuestions > 0 {
		return req.NumQuestions
	}
	return DefaultQuestionCount
}
