package quiz

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// OptionCount is the number of options every question carries.
const OptionCount = 4

// PlaceholderExplanation replaces a missing or blank explanation.
const PlaceholderExplanation = "No explanation provided"

// Validate turns normalized records into questions. The first invalid
// record aborts the whole batch; no partial list is ever returned.
func Validate(records []RawQuestion) ([]Question, error) {
	if len(records) == 0 {
		return nil, malformed("no questions generated", nil)
	}

	questions := make([]Question, 0, len(records))
	for i, rec := range records {
		q, err := validateRecord(i, rec)
		if err != nil {
			return nil, err
		}
		q.ID = i + 1
		questions = append(questions, q)
	}
	return questions, nil
}

func validateRecord(index int, rec RawQuestion) (Question, error) {
	if rec == nil {
		return Question{}, invalidQuestion(index, "record is not an object")
	}

	text, ok := rec["question"].(string)
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return Question{}, invalidQuestion(index, "missing question text")
	}

	options, err := parseOptions(index, rec["options"])
	if err != nil {
		return Question{}, err
	}

	answer, ok := coerceIndex(rec["correctAnswer"])
	if !ok {
		return Question{}, invalidQuestion(index, "correctAnswer %v is not an option index", rec["correctAnswer"])
	}
	if answer < 0 || answer >= len(options) {
		return Question{}, invalidQuestion(index, "correctAnswer %d out of range 0-%d", answer, len(options)-1)
	}

	explanation, _ := rec["explanation"].(string)
	explanation = strings.TrimSpace(explanation)
	if explanation == "" {
		explanation = PlaceholderExplanation
	}

	label, _ := rec["difficulty"].(string)
	difficulty, ok := ParseDifficulty(label)
	if !ok {
		difficulty = DifficultyMedium
	}

	return Question{
		Question:      text,
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   explanation,
		Difficulty:    difficulty,
	}, nil
}

func parseOptions(index int, v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, invalidQuestion(index, "options must be a list")
	}
	if len(list) != OptionCount {
		return nil, invalidQuestion(index, "expected %d options, got %d", OptionCount, len(list))
	}

	options := make([]string, len(list))
	for i, item := range list {
		s, ok := item.(string)
		s = strings.TrimSpace(s)
		if !ok || s == "" {
			return nil, invalidQuestion(index, "option %d is not a non-empty string", i)
		}
		options[i] = s
	}

	if len(lo.Uniq(options)) != len(options) {
		return nil, invalidQuestion(index, "options are not distinct")
	}
	return options, nil
}

// coerceIndex accepts JSON integers, integral floats and numeric strings.
func coerceIndex(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		return parseIndex(n.String())
	case float64:
		return integral(n)
	case int:
		return n, true
	case string:
		return parseIndex(strings.TrimSpace(n))
	default:
		return 0, false
	}
}

// parseIndex accepts plain decimal notation only; hex, infinity and NaN
// spellings are not indices.
func parseIndex(s string) (int, bool) {
	if s == "" || strings.Trim(s, "+-.0123456789eE") != "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return integral(f)
}

func integral(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
