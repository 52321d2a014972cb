package quizforge

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrQuizNotFound is returned when no quiz exists for a given ID
var ErrQuizNotFound = errors.New("quiz not found")

// DB represents a quiz database connection
type DB struct {
	db *sql.DB
}

// QuizRecord is a quiz row as stored
type QuizRecord struct {
	ID             string    `json:"id"`
	Topic          string    `json:"topic"`
	NumQuestions   int       `json:"num_questions"`
	SourceMaterial string    `json:"source_material,omitempty"`
	Difficulty     string    `json:"difficulty,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Status         string    `json:"status"`
}

// OpenDB opens a new database connection
func OpenDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.db.Close()
}

// CreateTables creates the necessary tables if they don't exist
func (db *DB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			num_questions INTEGER NOT NULL,
			source_material TEXT,
			difficulty TEXT,
			created_at DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'generating'
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			quiz_id TEXT NOT NULL,
			question_num INTEGER NOT NULL,
			question_text TEXT NOT NULL,
			options TEXT NOT NULL,
			correct_answer INTEGER NOT NULL,
			FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
		)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return nil
}

// CreateQuiz inserts a new quiz row
func (db *DB) CreateQuiz(rec *QuizRecord) error {
	_, err := db.db.Exec(
		"INSERT INTO quizzes (id, topic, num_questions, source_material, difficulty, created_at, status) VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Topic, rec.NumQuestions, rec.SourceMaterial, rec.Difficulty, rec.CreatedAt, rec.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// GetQuiz retrieves a quiz row by ID
func (db *DB) GetQuiz(id string) (*QuizRecord, error) {
	var rec QuizRecord
	err := db.db.QueryRow(
		"SELECT id, topic, num_questions, source_material, difficulty, created_at, status FROM quizzes WHERE id = ?",
		id,
	).Scan(&rec.ID, &rec.Topic, &rec.NumQuestions, &rec.SourceMaterial, &rec.Difficulty, &rec.CreatedAt, &rec.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrQuizNotFound, id)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return &rec, nil
}

// GetQuizzes retrieves all quiz rows, newest first, optionally limited
func (db *DB) GetQuizzes(limit int) ([]QuizRecord, error) {
	query := "SELECT id, topic, num_questions, source_material, difficulty, created_at, status FROM quizzes ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []QuizRecord
	for rows.Next() {
		var rec QuizRecord
		err := rows.Scan(&rec.ID, &rec.Topic, &rec.NumQuestions, &rec.SourceMaterial, &rec.Difficulty, &rec.CreatedAt, &rec.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quizzes: %w", err)
	}

	return quizzes, nil
}

// UpdateQuizStatus updates the status of a quiz
func (db *DB) UpdateQuizStatus(id, status string) error {
	_, err := db.db.Exec("UPDATE quizzes SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update quiz status: %w", err)
	}
	return nil
}

// SaveQuestions stores a quiz's questions in order inside one transaction
func (db *DB) SaveQuestions(quizID string, questions []Question) error {
	tx, err := db.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i, q := range questions {
		optionsJSON, err := optionsToJSON(q.Options)
		if err != nil {
			tx.Rollback()
			return err
		}
		_, err = tx.Exec(
			"INSERT INTO questions (id, quiz_id, question_num, question_text, options, correct_answer) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.NewString(), quizID, i+1, q.Text, optionsJSON, q.CorrectAnswer,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to store question %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit questions: %w", err)
	}
	return nil
}

// GetQuestions retrieves a quiz's questions in order
func (db *DB) GetQuestions(quizID string) ([]Question, error) {
	rows, err := db.db.Query(
		"SELECT question_text, options, correct_answer FROM questions WHERE quiz_id = ? ORDER BY question_num",
		quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		var optionsJSON string
		if err := rows.Scan(&q.Text, &optionsJSON, &q.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.Options, err = optionsFromJSON(optionsJSON)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}

// QuestionCount returns how many questions are stored for a quiz
func (db *DB) QuestionCount(quizID string) (int, error) {
	var count int
	err := db.db.QueryRow("SELECT COUNT(*) FROM questions WHERE quiz_id = ?", quizID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// LoadQuiz assembles a full quiz from its rows
func (db *DB) LoadQuiz(id string) (*Quiz, error) {
	rec, err := db.GetQuiz(id)
	if err != nil {
		return nil, err
	}
	questions, err := db.GetQuestions(id)
	if err != nil {
		return nil, err
	}
	return &Quiz{
		ID:        rec.ID,
		Topic:     rec.Topic,
		Questions: questions,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func optionsToJSON(options []string) (string, error) {
	data, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("failed to marshal options: %w", err)
	}
	return string(data), nil
}

func optionsFromJSON(optionsJSON string) ([]string, error) {
	var options []string
	if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	return options, nil
}
