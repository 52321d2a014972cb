package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"quizforge"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// maxConcurrentBuilds caps background quiz generation
const maxConcurrentBuilds = 4

type Server struct {
	cfg     quizforge.Config
	db      *quizforge.DB
	gen     quizforge.TextGenerator
	tracker *quizforge.GenerationTracker
	store   *sessions.CookieStore
}

func main() {
	cfg := quizforge.FromEnv()
	quizforge.SetVerbose(cfg.Verbose)

	if cfg.APIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}

	db, err := quizforge.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	server := &Server{
		cfg:     cfg,
		db:      db,
		gen:     quizforge.NewQuestionMaker(cfg.APIKey, cfg.Model),
		tracker: quizforge.NewGenerationTracker(),
		store:   sessions.NewCookieStore([]byte(cfg.SessionKey)),
	}

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, server.routes()))
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/quizzes", s.handleCreateQuiz)
		r.Get("/quizzes", s.handleListQuizzes)
		r.Get("/quizzes/{quizID}", s.handleGetQuiz)
		r.Get("/quizzes/{quizID}/status", s.handleQuizStatus)
		r.Post("/quizzes/{quizID}/answers", s.handleSubmitAnswer)
		r.Get("/quizzes/{quizID}/score", s.handleScore)
		r.Post("/extract", s.handleExtract)
	})
	r.Handle("/*", http.FileServer(http.Dir(s.cfg.StaticDir)))

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createQuizRequest struct {
	Topic          string `json:"topic"`
	NumQuestions   int    `json:"num_questions"`
	SourceMaterial string `json:"source_material"`
	Difficulty     string `json:"difficulty"`
}

// handleCreateQuiz registers a quiz and generates it in the background
func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var body createQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if body.Topic == "" {
		http.Error(w, "Topic is required", http.StatusBadRequest)
		return
	}

	if s.tracker.ActiveCount() >= maxConcurrentBuilds {
		http.Error(w, "Too many quizzes generating, try again later", http.StatusTooManyRequests)
		return
	}

	req := quizforge.GenerationRequest{
		Topic:          body.Topic,
		NumQuestions:   body.NumQuestions,
		SourceMaterial: body.SourceMaterial,
		Difficulty:     body.Difficulty,
	}

	quizID := uuid.NewString()
	rec := &quizforge.QuizRecord{
		ID:             quizID,
		Topic:          req.Topic,
		NumQuestions:   req.QuestionCount(),
		SourceMaterial: req.SourceMaterial,
		Difficulty:     req.Difficulty,
		CreatedAt:      time.Now(),
		Status:         quizforge.StatusGenerating,
	}
	if err := s.db.CreateQuiz(rec); err != nil {
		log.Printf("Failed to create quiz: %v", err)
		http.Error(w, "Failed to create quiz", http.StatusInternalServerError)
		return
	}

	s.tracker.Begin(quizID)
	go s.generateQuiz(quizID, req)

	writeJSON(w, http.StatusAccepted, map[string]string{
		"id":     quizID,
		"status": quizforge.StatusGenerating,
	})
}

// generateQuiz runs the model call and extraction pipeline off the request path
func (s *Server) generateQuiz(quizID string, req quizforge.GenerationRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.GenTimeoutSec)*time.Second)
	defer cancel()

	transcript, err := quizforge.NewLLMLogger(s.cfg.LogDir, quizID)
	if err != nil {
		log.Printf("Failed to create transcript for quiz %s: %v", quizID, err)
		// Continue without a transcript rather than failing
	}
	defer transcript.Close()

	generator := quizforge.NewQuizGenerator(s.gen)
	quiz, err := generator.GenerateQuiz(ctx, req, transcript)
	if err != nil {
		log.Printf("Failed to generate quiz %s: %v", quizID, err)
		if dbErr := s.db.UpdateQuizStatus(quizID, quizforge.StatusFailed); dbErr != nil {
			log.Printf("Failed to update quiz status %s: %v", quizID, dbErr)
		}
		s.tracker.Finish(quizID, err)
		return
	}

	if err := s.db.SaveQuestions(quizID, quiz.Questions); err != nil {
		log.Printf("Failed to store questions for quiz %s: %v", quizID, err)
		if dbErr := s.db.UpdateQuizStatus(quizID, quizforge.StatusFailed); dbErr != nil {
			log.Printf("Failed to update quiz status %s: %v", quizID, dbErr)
		}
		s.tracker.Finish(quizID, err)
		return
	}

	if err := s.db.UpdateQuizStatus(quizID, quizforge.StatusReady); err != nil {
		log.Printf("Failed to update quiz status %s: %v", quizID, err)
	}
	s.tracker.Finish(quizID, nil)
	log.Printf("Quiz %s ready with %d questions", quizID, len(quiz.Questions))
}

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	quizzes, err := s.db.GetQuizzes(limit)
	if err != nil {
		log.Printf("Failed to get quizzes: %v", err)
		http.Error(w, "Failed to get quizzes", http.StatusInternalServerError)
		return
	}
	if quizzes == nil {
		quizzes = []quizforge.QuizRecord{}
	}
	writeJSON(w, http.StatusOK, quizzes)
}

type quizResponse struct {
	ID        string               `json:"id"`
	Topic     string               `json:"topic"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	Questions []quizforge.Question `json:"questions"`
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

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

	questions, err := s.db.GetQuestions(quizID)
	if err != nil {
		log.Printf("Failed to get questions for quiz %s: %v", quizID, err)
		http.Error(w, "Failed to get questions", http.StatusInternalServerError)
		return
	}
	if questions == nil {
		questions = []quizforge.Question{}
	}

	writeJSON(w, http.StatusOK, quizResponse{
		ID:        rec.ID,
		Topic:     rec.Topic,
		Status:    rec.Status,
		CreatedAt: rec.CreatedAt,
		Questions: questions,
	})
}

func (s *Server) handleQuizStatus(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	// The tracker is fresher than the database while a build is running
	status, known := s.tracker.Status(quizID)
	if !known {
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
		status = rec.Status
	}

	resp := map[string]string{"id": quizID, "status": status}
	if err := s.tracker.Err(quizID); err != nil {
		resp["error"] = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type extractRequest struct {
	Text            string `json:"text"`
	Count           int    `json:"count"`
	Seed            *int64 `json:"seed,omitempty"`
	AllowShortYield bool   `json:"allow_short_yield,omitempty"`
}

type extractResponse struct {
	Questions []quizforge.Question `json:"questions"`
	Tier      quizforge.Tier       `json:"tier"`
	Yield     int                  `json:"yield"`
	ToppedUp  int                  `json:"topped_up"`
}

// handleExtract runs the extraction pipeline on caller-supplied text
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var body extractRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if body.Text == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}
	if body.Count == 0 {
		body.Count = quizforge.DefaultQuestionCount
	}

	extractor := quizforge.NewExtractor()
	if body.Seed != nil {
		extractor = quizforge.NewExtractorWithRand(rngFromSeed(*body.Seed))
	}
	extractor.SetAllowShortYield(body.AllowShortYield)

	questions, report := extractor.ExtractDetailed(body.Text, body.Count)
	writeJSON(w, http.StatusOK, extractResponse{
		Questions: questions,
		Tier:      report.Tier,
		Yield:     report.Yield,
		ToppedUp:  report.ToppedUp,
	})
}

func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
