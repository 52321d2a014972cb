package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"quizforge"
)

func main() {
	var (
		topic          = flag.String("topic", "", "Quiz topic (required)")
		numQuestions   = flag.Int("questions", quizforge.DefaultQuestionCount, "Number of questions to generate")
		sourceMaterial = flag.String("source", "", "Source material to base questions on")
		sourceFile     = flag.String("source-file", "", "Read source material from a file")
		difficulty     = flag.String("difficulty", "medium", "Difficulty level (easy, medium, hard)")
		outputFile     = flag.String("output", "", "Output file for quiz JSON (default: stdout)")
		apiKey         = flag.String("api-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
		model          = flag.String("model", "", "Model to use (default: gpt-4o)")
		playMode       = flag.Bool("play", false, "Play the quiz interactively after generating")
		seed           = flag.Int64("seed", 0, "Seed for reproducible fallback questions (0 = time-seeded)")
		verbose        = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	quizforge.SetVerbose(*verbose)

	if *topic == "" {
		log.Fatal("Topic is required. Use -topic flag.")
	}

	// Get API key from flag or environment
	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
		if *apiKey == "" {
			log.Fatal("OpenAI API key is required. Use -api-key flag or set OPENAI_API_KEY environment variable.")
		}
	}

	if *sourceFile != "" {
		data, err := os.ReadFile(*sourceFile)
		if err != nil {
			log.Fatalf("Failed to read source file: %v", err)
		}
		*sourceMaterial = string(data)
	}

	maker := quizforge.NewQuestionMaker(*apiKey, *model)
	generator := quizforge.NewQuizGenerator(maker)
	if *seed != 0 {
		extractor := quizforge.NewExtractorWithRand(rand.New(rand.NewSource(*seed)))
		generator = quizforge.NewQuizGeneratorWithExtractor(maker, extractor)
	}

	req := quizforge.GenerationRequest{
		Topic:          *topic,
		NumQuestions:   *numQuestions,
		SourceMaterial: *sourceMaterial,
		Difficulty:     *difficulty,
	}

	if *verbose {
		log.Printf("Starting quiz generation for topic: %s", *topic)
		log.Printf("Target questions: %d, Difficulty: %s", req.QuestionCount(), *difficulty)
		if *sourceMaterial != "" {
			log.Printf("Using source material: %d characters", len(*sourceMaterial))
		}
	}

	// Generate quiz with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	quiz, err := generator.GenerateQuiz(ctx, req, nil)
	if err != nil {
		log.Fatalf("Failed to generate quiz: %v", err)
	}

	if *playMode {
		playQuiz(quiz)
		return
	}

	// Output the quiz
	output, err := json.MarshalIndent(quiz, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal quiz: %v", err)
	}

	if *outputFile != "" {
		err = os.WriteFile(*outputFile, output, 0644)
		if err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Quiz saved to: %s", *outputFile)
	} else {
		fmt.Println(string(output))
	}
}

func playQuiz(quiz *quizforge.Quiz) {
	if len(quiz.Questions) == 0 {
		fmt.Println("The quiz has no questions.")
		return
	}

	fmt.Printf("🎯 Quiz: %s\n", quiz.Topic)
	fmt.Printf("📝 Questions: %d\n\n", len(quiz.Questions))

	scanner := bufio.NewScanner(os.Stdin)
	letters := []string{"A", "B", "C", "D"}
	score := 0

	for i, question := range quiz.Questions {
		fmt.Printf("Question %d/%d:\n", i+1, len(quiz.Questions))
		fmt.Printf("%s\n\n", question.Text)

		for j, option := range question.Options {
			fmt.Printf("%s) %s\n", letters[j], option)
		}
		fmt.Println()

		var answer int
		for {
			fmt.Print("Your answer (A/B/C/D): ")
			if !scanner.Scan() {
				fmt.Println()
				return
			}
			input := strings.ToUpper(strings.TrimSpace(scanner.Text()))
			answer = strings.Index("ABCD", input)
			if len(input) == 1 && answer >= 0 {
				break
			}
			fmt.Println("Please enter A, B, C, or D")
		}

		if answer == question.CorrectAnswer {
			fmt.Println("✅ Correct!")
			score++
		} else {
			fmt.Printf("❌ Incorrect. The correct answer is %s) %s\n",
				letters[question.CorrectAnswer], question.Options[question.CorrectAnswer])
		}

		fmt.Printf("📊 Score: %d/%d\n\n", score, i+1)
		fmt.Println(strings.Repeat("─", 50))
		fmt.Println()
	}

	percentage := float64(score) / float64(len(quiz.Questions)) * 100

	fmt.Println("🎉 Quiz completed!")
	fmt.Printf("🏆 Final score: %d/%d (%.1f%%)\n", score, len(quiz.Questions), percentage)

	if percentage >= 80 {
		fmt.Println("🌟 Excellent work!")
	} else if percentage >= 60 {
		fmt.Println("👍 Good job!")
	} else {
		fmt.Println("📚 Keep studying!")
	}
}
