package quizforge

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LLMLogger writes a per-quiz transcript: the generation request, the raw
// model output, and how extraction went. A nil *LLMLogger is valid and
// discards everything, so callers never need to guard their logging.
type LLMLogger struct {
	file   *os.File
	mu     sync.Mutex
	quizID string
}

// NewLLMLogger creates a transcript logger for a specific quiz under dir
func NewLLMLogger(dir, quizID string) (*LLMLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("%s.log", quizID))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	ll := &LLMLogger{
		file:   file,
		quizID: quizID,
	}
	ll.Logf("=== Quiz Generation Transcript ===\n")
	ll.Logf("Quiz ID: %s\n", quizID)
	ll.Logf("Started: %s\n\n", time.Now().Format(time.RFC3339))
	return ll, nil
}

// Logf writes a formatted transcript entry with a timestamp
func (ll *LLMLogger) Logf(format string, args ...interface{}) {
	if ll == nil {
		return
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.writef(format, args...)
}

// writef appends without locking; callers hold mu
func (ll *LLMLogger) writef(format string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(ll.file, "[%s] %s", timestamp, fmt.Sprintf(format, args...))
	ll.file.Sync()
}

// LogRequest records the generation request parameters
func (ll *LLMLogger) LogRequest(req GenerationRequest) {
	if ll == nil {
		return
	}
	ll.Logf("=== REQUEST ===\n")
	ll.Logf("Topic: %s\n", req.Topic)
	ll.Logf("Questions: %d\n", req.QuestionCount())
	if req.Difficulty != "" {
		ll.Logf("Difficulty: %s\n", req.Difficulty)
	}
	if req.SourceMaterial != "" {
		ll.Logf("Source material length: %d characters\n", len(req.SourceMaterial))
	}
	ll.Logf("===============\n\n")
}

// LogRawOutput records the untouched model output before extraction
func (ll *LLMLogger) LogRawOutput(raw string) {
	if ll == nil {
		return
	}
	ll.Logf("=== RAW MODEL OUTPUT (%d characters) ===\n", len(raw))
	ll.Logf("%s\n", raw)
	ll.Logf("========================================\n\n")
}

// LogExtraction records which tier produced the result
func (ll *LLMLogger) LogExtraction(report ExtractionReport, count int) {
	if ll == nil {
		return
	}
	ll.Logf("Extraction: %s tier yielded %d of %d records (%d topped up)\n",
		report.Tier, report.Yield, count, report.ToppedUp)
}

// Close writes the footer and closes the transcript file
func (ll *LLMLogger) Close() error {
	if ll == nil {
		return nil
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()

	if ll.file != nil {
		ll.writef("\n=== Transcript Complete ===\n")
		ll.writef("Completed: %s\n", time.Now().Format(time.RFC3339))
		return ll.file.Close()
	}
	return nil
}
