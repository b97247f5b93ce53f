package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	content := "Photosynthesis converts light energy into chemical energy.\n\nIt happens in chloroplasts."
	plan := DifficultyPlan{Easy: 2, Medium: 2, Hard: 1}

	p := BuildPrompt(content, 5, plan)

	assert.Contains(t, p, "Generate 5 multiple-choice questions")
	assert.Contains(t, p, "CONTENT:\n"+content+"\n")
	assert.Contains(t, p, "exactly 2 EASY questions, 2 MEDIUM questions, and 1 HARD questions")
	assert.Contains(t, p, "exactly 4 options")
	assert.Contains(t, p, `"correctAnswer": 0`)
	assert.Contains(t, p, "Return ONLY a valid JSON array")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	plan := DifficultyPlan{Easy: 1}
	assert.Equal(t, BuildPrompt("x", 1, plan), BuildPrompt("x", 1, plan))
}

func TestBuildPrompt_ContentVerbatim(t *testing.T) {
	content := strings.Repeat("long content ", 5000) + "```json tricky```"
	p := BuildPrompt(content, 3, EvenPlan(3))
	assert.Contains(t, p, content)
}
