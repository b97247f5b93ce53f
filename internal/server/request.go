package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/quizsmith/quizsmith/internal/quiz"
)

// MinContentLength is the shortest source text accepted for generation.
const MinContentLength = 50

// generateRequest is the decoded body shared by both generation routes.
type generateRequest struct {
	Content      string              `json:"content"`
	NumQuestions int                 `json:"numQuestions"`
	Difficulty   quiz.DifficultyPlan `json:"difficulty"`
	TimeLimit    int                 `json:"timeLimit"`
}

func (r generateRequest) toGeneration() quiz.GenerationRequest {
	return quiz.GenerationRequest{
		Content:          r.Content,
		NumQuestions:     r.NumQuestions,
		Difficulty:       r.Difficulty,
		TimeLimitMinutes: r.TimeLimit,
	}
}

func tierSchema() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0}
}

func configProperties() map[string]any {
	return map[string]any{
		"numQuestions": map[string]any{"type": "integer", "minimum": quiz.MinQuestions, "maximum": quiz.MaxQuestions},
		"difficulty": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"easy":   tierSchema(),
				"medium": tierSchema(),
				"hard":   tierSchema(),
			},
		},
		"timeLimit": map[string]any{"type": "integer", "minimum": quiz.MinTimeLimit, "maximum": quiz.MaxTimeLimit},
	}
}

// textRequestSchema validates JSON bodies of generate-from-text.
func textRequestSchema() map[string]any {
	props := configProperties()
	props["content"] = map[string]any{"type": "string", "minLength": MinContentLength}
	return map[string]any{
		"type":       "object",
		"required":   []any{"content", "numQuestions", "difficulty", "timeLimit"},
		"properties": props,
	}
}

// fileRequestSchema validates the form fields of generate-from-file.
func fileRequestSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"required":   []any{"numQuestions", "difficulty", "timeLimit"},
		"properties": configProperties(),
	}
}

var (
	schemaOnce  sync.Once
	textSchema  *jsonschema.Schema
	fileSchema  *jsonschema.Schema
	schemaError error
)

func compiledSchemas() (*jsonschema.Schema, *jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		textSchema, schemaError = compileSchema("text-request", textRequestSchema())
		if schemaError != nil {
			return
		}
		fileSchema, schemaError = compileSchema("file-request", fileRequestSchema())
	})
	return textSchema, fileSchema, schemaError
}

func compileSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	// The compiler wants a plain decoded JSON value, not Go-typed slices.
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://quizsmith/%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	return c.Compile(url)
}

// fieldError is one problem in a rejected request. Field is a dotted path
// into the body, or "body" when the problem is with the body as a whole.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func bodyError(msg string) []fieldError {
	return []fieldError{{Field: "body", Message: msg}}
}

// validationError is a rejected request body. Details lists each problem.
type validationError struct {
	Details []fieldError
}

func (e *validationError) Error() string {
	parts := make([]string, len(e.Details))
	for i, d := range e.Details {
		parts[i] = d.Field + ": " + d.Message
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// checkInstance validates a decoded JSON value against schema and then
// applies the cross-field rule that difficulty tiers sum to numQuestions.
func checkInstance(schema *jsonschema.Schema, instance any) error {
	if err := schema.Validate(instance); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		return &validationError{Details: describe(verr)}
	}
	return nil
}

func describe(verr *jsonschema.ValidationError) []fieldError {
	out := verr.BasicOutput()
	var details []fieldError
	for _, unit := range out.Errors {
		if unit.Error == nil {
			continue
		}
		field := strings.TrimPrefix(unit.InstanceLocation, "/")
		if field == "" {
			field = "body"
		}
		details = append(details, fieldError{
			Field:   strings.ReplaceAll(field, "/", "."),
			Message: unit.Error.String(),
		})
	}
	if len(details) == 0 {
		details = bodyError(verr.Error())
	}
	return details
}

// distributionMessage is the response body when the tiers do not add up.
const distributionMessage = "Difficulty distribution must sum to total number of questions"

var errDistribution = errors.New("difficulty distribution must sum to total number of questions")

func decodeText(body []byte) (generateRequest, error) {
	var req generateRequest
	schema, _, err := compiledSchemas()
	if err != nil {
		return req, err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return req, &validationError{Details: bodyError("request body must be valid JSON")}
	}
	if err := checkInstance(schema, instance); err != nil {
		return req, err
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, &validationError{Details: bodyError(err.Error())}
	}
	if req.Difficulty.Total() != req.NumQuestions {
		return req, errDistribution
	}
	return req, nil
}

// decodeForm validates multipart form values. Each value is decoded as JSON
// when it parses, so "5" becomes a number and the difficulty field an object.
func decodeForm(values map[string]string) (generateRequest, error) {
	var req generateRequest
	_, schema, err := compiledSchemas()
	if err != nil {
		return req, err
	}

	instance := make(map[string]any, len(values))
	for k, v := range values {
		if parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(v)); err == nil {
			instance[k] = parsed
		} else {
			instance[k] = v
		}
	}
	if err := checkInstance(schema, instance); err != nil {
		return req, err
	}

	raw, err := json.Marshal(instance)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, &validationError{Details: bodyError(err.Error())}
	}
	if req.Difficulty.Total() != req.NumQuestions {
		return req, errDistribution
	}
	return req, nil
}
