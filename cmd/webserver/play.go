package main

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quizforge"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

const playSessionName = "quizforge-play"

// PlaySession tracks one browser's run through a quiz
type PlaySession struct {
	QuizID  string      `json:"quiz_id"`
	Answers map[int]int `json:"answers"` // question number -> chosen option
}

func init() {
	gob.Register(PlaySession{})
}

type answerRequest struct {
	QuestionNum int `json:"question_num"`
	Answer      int `json:"answer"`
}

// handleSubmitAnswer records one answer in the caller's play session
func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	var body answerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if body.Answer < 0 || body.Answer > 3 {
		http.Error(w, "Invalid answer", http.StatusBadRequest)
		return
	}

	rec, err := s.db.GetQuiz(quizID)
	if err != nil {
		if errors.Is(err, quizforge.ErrQuizNotFound) {
			http.Error(w, "Quiz not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to get quiz %s: %v", quizID, err)
		http.Error(w, "Failed to get quiz", http.StatusInternalServerError)
		return
	}
	if rec.Status != quizforge.StatusReady {
		http.Error(w, "Quiz is not ready", http.StatusConflict)
		return
	}

	total, err := s.db.QuestionCount(quizID)
	if err != nil {
		log.Printf("Failed to count questions for quiz %s: %v", quizID, err)
		http.Error(w, "Failed to get quiz", http.StatusInternalServerError)
		return
	}
	if body.QuestionNum < 1 || body.QuestionNum > total {
		http.Error(w, "Invalid question number", http.StatusBadRequest)
		return
	}

	session, _ := s.store.Get(r, playSessionName)
	play := playFromSession(session, quizID)
	play.Answers[body.QuestionNum] = body.Answer

	session.Values["play"] = play
	if err := session.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"answered": len(play.Answers),
		"total":    total,
	})
}

// playFromSession loads the play state, resetting it when the quiz changes
func playFromSession(session *sessions.Session, quizID string) PlaySession {
	if v, ok := session.Values["play"].(PlaySession); ok && v.QuizID == quizID {
		if v.Answers == nil {
			v.Answers = make(map[int]int)
		}
		return v
	}
	return PlaySession{QuizID: quizID, Answers: make(map[int]int)}
}

type questionResult struct {
	QuestionNum   int  `json:"question_num"`
	YourAnswer    int  `json:"your_answer"`
	CorrectAnswer int  `json:"correct_answer"`
	Correct       bool `json:"correct"`
}

type scoreResponse struct {
	QuizID   string           `json:"quiz_id"`
	Total    int              `json:"total"`
	Answered int              `json:"answered"`
	Score    int              `json:"score"`
	Results  []questionResult `json:"results"`
}

// handleScore reports the play session's answers against the stored quiz
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	if _, err := s.db.GetQuiz(quizID); err != nil {
		if errors.Is(err, quizforge.ErrQuizNotFound) {
			http.Error(w, "Quiz not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to get quiz %s: %v", quizID, err)
		http.Error(w, "Failed to get quiz", http.StatusInternalServerError)
		return
	}

	session, _ := s.store.Get(r, playSessionName)
	play, ok := session.Values["play"].(PlaySession)
	if !ok || play.QuizID != quizID {
		http.Error(w, "No answers recorded for this quiz", http.StatusNotFound)
		return
	}

	questions, err := s.db.GetQuestions(quizID)
	if err != nil {
		log.Printf("Failed to get questions for quiz %s: %v", quizID, err)
		http.Error(w, "Failed to get questions", http.StatusInternalServerError)
		return
	}

	resp := scoreResponse{QuizID: quizID, Total: len(questions)}
	for i, q := range questions {
		num := i + 1
		answer, answered := play.Answers[num]
		if !answered {
			continue
		}
		resp.Answered++
		result := questionResult{
			QuestionNum:   num,
			YourAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       answer == q.CorrectAnswer,
		}
		if result.Correct {
			resp.Score++
		}
		resp.Results = append(resp.Results, result)
	}

	writeJSON(w, http.StatusOK, resp)
}
