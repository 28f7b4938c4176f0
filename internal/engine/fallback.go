package engine

import "github.com/aliskhannn/quizmentor/internal/domain/entities"

// FallbackCategory labels sessions started without a category.
const FallbackCategory = "General"

// FallbackQuestions returns the built-in questions used when a session is
// started with an empty or unusable bank.
func FallbackQuestions() []entities.Question {
	return []entities.Question{
		{
			ID:     "fallback-1",
			Prompt: "What is the correct way to declare a variable in JavaScript?",
			Options: []string{
				"var myVariable = value;",
				"let myVariable = value;",
				"const myVariable = value;",
				"All of the above",
			},
			CorrectIndex: 3,
			Explanation:  "All three are valid ways to declare variables in JavaScript, each with different scoping rules.",
			Difficulty:   entities.DifficultyEasy,
			Category:     FallbackCategory,
		},
		{
			ID:           "fallback-2",
			Prompt:       "Which React hook is used for side effects?",
			Options:      []string{"useState", "useEffect", "useContext", "useReducer"},
			CorrectIndex: 1,
			Explanation:  "useEffect is specifically designed for handling side effects in functional components.",
			Difficulty:   entities.DifficultyEasy,
			Category:     FallbackCategory,
		},
		{
			ID:     "fallback-3",
			Prompt: "What does TypeScript add to JavaScript?",
			Options: []string{
				"Static typing",
				"Object-oriented features",
				"Better performance",
				"All of the above",
			},
			CorrectIndex: 0,
			Explanation:  "TypeScript primarily adds static typing to JavaScript, making code more reliable and maintainable.",
			Difficulty:   entities.DifficultyMedium,
			Category:     FallbackCategory,
		},
	}
}
