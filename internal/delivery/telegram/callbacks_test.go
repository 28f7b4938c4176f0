package telegram

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aliskhannn/quizmentor/internal/service"
)

// TestQuizErrorToast verifies each answer error gets its own toast.
func TestQuizErrorToast(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{service.ErrNoActiveSession, msgQuizExpired},
		{service.ErrStaleSession, msgQuizExpired},
		{service.ErrStaleQuestion, msgQuestionExpired},
		{service.ErrAlreadyAnswered, msgAlreadyAnswered},
		{service.ErrInvalidOption, msgInvalidOption},
		{fmt.Errorf("answer: %w", service.ErrInvalidOption), msgInvalidOption},
		{errors.New("boom"), msgInternalError},
	}
	for _, tc := range cases {
		if got := quizErrorToast(tc.err); got != tc.want {
			t.Fatalf("%v: expected %q, got %q", tc.err, tc.want, got)
		}
	}
}
