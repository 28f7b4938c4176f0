package engine

import (
	"testing"

	"github.com/aliskhannn/quizmentor/internal/domain/entities"
)

// TestPrepareBankDropsMalformed verifies invalid questions are skipped.
func TestPrepareBankDropsMalformed(t *testing.T) {
	qs := makeQuestions(2)
	qs = append(qs,
		entities.Question{ID: "one-option", Prompt: "?", Options: []string{"only"}},
		entities.Question{ID: "bad-index", Prompt: "?", Options: []string{"a", "b"}, CorrectIndex: 2},
		entities.Question{ID: "no-prompt", Options: []string{"a", "b"}},
	)

	bank, fallback := PrepareBank(qs, nil)
	if fallback {
		t.Fatalf("expected supplied bank to be used")
	}
	if len(bank) != 2 {
		t.Fatalf("expected 2 playable questions, got %d", len(bank))
	}
}

// TestPrepareBankFallback verifies the built-in set replaces an unusable bank.
func TestPrepareBankFallback(t *testing.T) {
	for name, qs := range map[string][]entities.Question{
		"nil":       nil,
		"empty":     {},
		"malformed": {{ID: "x", Prompt: "?", Options: nil}},
	} {
		bank, fallback := PrepareBank(qs, nil)
		if !fallback {
			t.Fatalf("%s: expected fallback", name)
		}
		if len(bank) != len(FallbackQuestions()) {
			t.Fatalf("%s: expected %d fallback questions, got %d", name, len(FallbackQuestions()), len(bank))
		}
	}
}

// TestPrepareBankCopiesOptions verifies later caller mutation does not leak in.
func TestPrepareBankCopiesOptions(t *testing.T) {
	qs := makeQuestions(1)
	bank, _ := PrepareBank(qs, nil)
	qs[0].Options[0] = "mutated"
	if bank[0].Options[0] != "right" {
		t.Fatalf("expected bank to hold a copy, got %q", bank[0].Options[0])
	}
}

// TestFallbackQuestionsAreValid verifies the built-in set is playable.
func TestFallbackQuestionsAreValid(t *testing.T) {
	for _, q := range FallbackQuestions() {
		if err := q.Validate(); err != nil {
			t.Fatalf("fallback %s: %v", q.ID, err)
		}
	}
}
