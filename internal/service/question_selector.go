package service

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
)

// QuestionSelector picks the questions for one quiz: a random sample of
// the category, ordered from easy to hard.
type QuestionSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuestionSelector creates a new QuestionSelector.
func NewQuestionSelector() *QuestionSelector {
	return &QuestionSelector{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Select returns up to limit questions. A limit of 0 or less keeps all of them.
// The input slice is not modified.
func (s *QuestionSelector) Select(questions []entities.Question, limit int) []entities.Question {
	picked := append([]entities.Question(nil), questions...)

	s.mu.Lock()
	s.rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	s.mu.Unlock()

	if limit > 0 && len(picked) > limit {
		picked = picked[:limit]
	}

	sort.SliceStable(picked, func(i, j int) bool {
		return difficultyRank(picked[i].Difficulty) < difficultyRank(picked[j].Difficulty)
	})

	return picked
}

// difficultyRank orders difficulties; questions without one sit in the middle.
func difficultyRank(d entities.Difficulty) int {
	switch d {
	case entities.DifficultyEasy:
		return 0
	case entities.DifficultyHard:
		return 2
	default:
		return 1
	}
}
