package quizforge

import (
	"sync"
	"time"
)

// Generation status values reported by the tracker
const (
	StatusGenerating = "generating"
	StatusReady      = "ready"
	StatusFailed     = "failed"
)

// generation records one in-flight or finished quiz build
type generation struct {
	status    string
	err       error
	startedAt time.Time
}

// GenerationTracker manages the set of quiz builds running in the background
type GenerationTracker struct {
	mu          sync.RWMutex
	generations map[string]*generation
}

// NewGenerationTracker creates an empty tracker
func NewGenerationTracker() *GenerationTracker {
	return &GenerationTracker{
		generations: make(map[string]*generation),
	}
}

// Begin registers a quiz build, returning false if one is already running
func (gt *GenerationTracker) Begin(quizID string) bool {
	gt.mu.Lock()
	defer gt.mu.Unlock()

	if g, ok := gt.generations[quizID]; ok && g.status == StatusGenerating {
		return false
	}

	gt.generations[quizID] = &generation{
		status:    StatusGenerating,
		startedAt: time.Now(),
	}
	return true
}

// Finish marks a quiz build as done; a non-nil err marks it failed
func (gt *GenerationTracker) Finish(quizID string, err error) {
	gt.mu.Lock()
	defer gt.mu.Unlock()

	g, ok := gt.generations[quizID]
	if !ok {
		return
	}

	if err != nil {
		g.status = StatusFailed
		g.err = err
		return
	}
	g.status = StatusReady
}

// Status reports the state of a quiz build and whether it is known
func (gt *GenerationTracker) Status(quizID string) (string, bool) {
	gt.mu.RLock()
	defer gt.mu.RUnlock()

	g, ok := gt.generations[quizID]
	if !ok {
		return "", false
	}
	return g.status, true
}

// Err returns the failure recorded for a quiz build, if any
func (gt *GenerationTracker) Err(quizID string) error {
	gt.mu.RLock()
	defer gt.mu.RUnlock()

	g, ok := gt.generations[quizID]
	if !ok {
		return nil
	}
	return g.err
}

// ActiveCount returns the number of builds still generating
func (gt *GenerationTracker) ActiveCount() int {
	gt.mu.RLock()
	defer gt.mu.RUnlock()

	active := 0
	for _, g := range gt.generations {
		if g.status == StatusGenerating {
			active++
		}
	}
	return active
}

// Forget drops a finished build from the tracker
func (gt *GenerationTracker) Forget(quizID string) {
	gt.mu.Lock()
	defer gt.mu.Unlock()

	if g, ok := gt.generations[quizID]; ok && g.status != StatusGenerating {
		delete(gt.generations, quizID)
	}
}
