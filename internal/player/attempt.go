package player

import (
	"github.com/quizsmith/quizsmith/internal/quiz"
	"github.com/quizsmith/quizsmith/internal/ui/components"
)

// attempt is the state of one run through a quiz, shared by the screens.
type attempt struct {
	quiz    *quiz.Quiz
	answers []int
	current int
}

func newAttempt(q *quiz.Quiz) *attempt {
	answers := make([]int, len(q.Questions))
	for i := range answers {
		answers[i] = components.NoChoice
	}
	return &attempt{quiz: q, answers: answers}
}

func (a *attempt) answered() int {
	n := 0
	for _, ans := range a.answers {
		if ans != components.NoChoice {
			n++
		}
	}
	return n
}

// finishMsg ends the attempt and shows results.
type finishMsg struct {
	timedOut bool
}
