package quiz

import (
	"fmt"
	"strings"
)

// SystemInstruction is sent to every provider alongside the prompt.
const SystemInstruction = "You are an expert educational content creator specializing in creating high-quality multiple-choice questions. Always respond with valid JSON only."

const outputSchema = `[
  {
    "question": "Question text here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 0,
    "explanation": "Detailed explanation of why this answer is correct",
    "difficulty": "easy"
  }
]`

// BuildPrompt renders the user prompt for a generation call. The content is
// embedded verbatim; callers own any length limits.
func BuildPrompt(content string, numQuestions int, plan DifficultyPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert quiz creator. Generate %d multiple-choice questions based on the following content.\n\n", numQuestions)

	b.WriteString("CONTENT:\n")
	b.WriteString(content)
	b.WriteString("\n\n")

	b.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Generate exactly %d EASY questions, %d MEDIUM questions, and %d HARD questions\n", plan.Easy, plan.Medium, plan.Hard)
	b.WriteString("- Each question must have exactly 4 options (A, B, C, D)\n")
	b.WriteString("- All 4 options must be different from each other\n")
	b.WriteString("- Only ONE option should be correct\n")
	b.WriteString("- Provide a clear explanation for the correct answer\n")
	b.WriteString("- Easy questions: Test basic understanding and recall\n")
	b.WriteString("- Medium questions: Require application and analysis\n")
	b.WriteString("- Hard questions: Require synthesis, evaluation, and deep understanding\n\n")

	b.WriteString("Return ONLY a valid JSON array with this EXACT structure (no additional text):\n")
	b.WriteString(outputSchema)
	b.WriteString("\n\n")

	b.WriteString("IMPORTANT:\n")
	b.WriteString("- correctAnswer must be the index (0-3) of the correct option in the options array\n")
	b.WriteString("- difficulty must be one of \"easy\", \"medium\" or \"hard\"\n")
	b.WriteString("- Ensure questions are diverse and cover different aspects of the content\n")
	b.WriteString("- Make explanations clear and educational")

	return b.String()
}
