package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"quizforge"
)

// A small tool for poking at the extraction pipeline without a model call:
// feed it raw text and see which tier claims it and what comes out.
func main() {
	var (
		inputFile  = flag.String("input", "", "Read raw text from a file (default: stdin)")
		count      = flag.Int("count", quizforge.DefaultQuestionCount, "Number of questions to produce")
		seed       = flag.Int64("seed", 0, "Seed for reproducible fallback questions (0 = time-seeded)")
		allowShort = flag.Bool("allow-short", false, "Return short structured yields instead of topping up")
		verbose    = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	quizforge.SetVerbose(*verbose)

	var raw []byte
	var err error
	if *inputFile != "" {
		raw, err = os.ReadFile(*inputFile)
		if err != nil {
			log.Fatalf("Failed to read input file: %v", err)
		}
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("Failed to read stdin: %v", err)
		}
	}

	extractor := quizforge.NewExtractor()
	if *seed != 0 {
		extractor = quizforge.NewExtractorWithRand(rand.New(rand.NewSource(*seed)))
	}
	extractor.SetAllowShortYield(*allowShort)

	questions, report := extractor.ExtractDetailed(string(raw), *count)

	output, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal questions: %v", err)
	}
	fmt.Println(string(output))

	fmt.Fprintf(os.Stderr, "tier=%s yield=%d topped_up=%d total=%d\n",
		report.Tier, report.Yield, report.ToppedUp, len(questions))
}
