package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	openFence  = regexp.MustCompile("(?i)^```(?:json)?[ \t]*\r?\n?")
	closeFence = regexp.MustCompile("\r?\n?```\\s*$")
)

// StripFences removes one markdown code fence wrapping the whole text.
// Unfenced text is returned trimmed but otherwise unchanged.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = openFence.ReplaceAllString(s, "")
	s = closeFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// shapeVariant extracts the question list from one accepted top-level shape.
// ok is false when the value does not have that shape.
type shapeVariant struct {
	name    string
	extract func(v any) (list []any, ok bool)
}

func listField(key string) func(any) ([]any, bool) {
	return func(v any) ([]any, bool) {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		list, ok := obj[key].([]any)
		return list, ok
	}
}

var shapeVariants = []shapeVariant{
	{name: "array", extract: func(v any) ([]any, bool) {
		list, ok := v.([]any)
		return list, ok
	}},
	{name: "questions", extract: listField("questions")},
	{name: "quiz", extract: listField("quiz")},
}

var errNotJSON = errors.New("response is not valid JSON")

// Normalize turns raw provider output into a list of question records.
// It is a pure function of its input.
func Normalize(raw string) ([]RawQuestion, error) {
	body := StripFences(raw)
	if body == "" {
		return nil, malformed("empty response", errNotJSON)
	}
	if !json.Valid([]byte(body)) {
		return nil, malformed("", errNotJSON)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, malformed("", err)
	}

	for _, variant := range shapeVariants {
		list, ok := variant.extract(v)
		if !ok {
			continue
		}
		return toRecords(list), nil
	}

	return nil, &Error{
		Kind:   KindUnexpectedShape,
		Index:  -1,
		Detail: "expected a JSON array or an object with a \"questions\" or \"quiz\" array",
	}
}

func toRecords(list []any) []RawQuestion {
	records := make([]RawQuestion, len(list))
	for i, item := range list {
		if obj, ok := item.(map[string]any); ok {
			records[i] = RawQuestion(obj)
		}
	}
	return records
}
