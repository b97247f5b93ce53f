package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvenPlan(t *testing.T) {
	tests := []struct {
		n    int
		want DifficultyPlan
	}{
		{0, DifficultyPlan{}},
		{1, DifficultyPlan{Medium: 1}},
		{2, DifficultyPlan{Easy: 1, Medium: 1}},
		{3, DifficultyPlan{Easy: 1, Medium: 1, Hard: 1}},
		{10, DifficultyPlan{Easy: 3, Medium: 4, Hard: 3}},
		{50, DifficultyPlan{Easy: 17, Medium: 17, Hard: 16}},
	}
	for _, tt := range tests {
		got := EvenPlan(tt.n)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
		assert.Equal(t, tt.n, got.Total())
	}
}

func TestDifficultyPlan_Check(t *testing.T) {
	assert.NoError(t, DifficultyPlan{Easy: 2, Medium: 2, Hard: 1}.Check(5))
	assert.Error(t, DifficultyPlan{Easy: 2, Medium: 2, Hard: 2}.Check(5))
	assert.Error(t, DifficultyPlan{Easy: -1, Medium: 3, Hard: 3}.Check(5))
}

func TestParseDifficulty(t *testing.T) {
	d, ok := ParseDifficulty(" Easy ")
	assert.True(t, ok)
	assert.Equal(t, DifficultyEasy, d)

	_, ok = ParseDifficulty("expert")
	assert.False(t, ok)
}
