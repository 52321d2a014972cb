package quizforge

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Anchor for an embedded question array: an opening bracket and brace followed
// by a "question" key, whitespace-tolerant
var jsonArrayAnchor = regexp.MustCompile(`\[\s*\{\s*"question"`)

// extractJSONQuestions locates and parses a JSON question array embedded in
// raw model output. It returns the first count usable records and true on
// success, or nil and false when no array is found, the candidate does not
// parse, or fewer than count usable records result. Parsing is all-or-nothing:
// a single unmarshal failure fails the whole tier.
func extractJSONQuestions(raw string, count int) ([]Question, bool) {
	candidate, ok := locateJSONArray(raw)
	if !ok {
		VerboseLog("json tier: no question array found")
		return nil, false
	}

	var records []Question
	if err := json.Unmarshal([]byte(candidate), &records); err != nil {
		VerboseLog("json tier: candidate failed to parse: %v", err)
		return nil, false
	}

	usable := make([]Question, 0, len(records))
	for _, q := range records {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		usable = append(usable, q)
	}

	if len(usable) < count {
		VerboseLog("json tier: %d usable records, need %d", len(usable), count)
		return nil, false
	}

	usable = usable[:count]
	for i := range usable {
		usable[i] = sanitizeQuestion(usable[i])
	}
	return usable, true
}

// locateJSONArray finds the first anchored question array and walks forward
// balancing brackets and braces until the array closes. Bracket characters
// inside JSON strings are skipped, honoring backslash escapes. Returns false
// when no anchor matches or the array never closes (truncated output).
func locateJSONArray(raw string) (string, bool) {
	loc := jsonArrayAnchor.FindStringIndex(raw)
	if loc == nil {
		return "", false
	}

	start := loc[0]
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}
