package content

import "github.com/abhisek/vidya/internal/llm"

// QuizSchema defines the JSON schema for quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A short multiple-choice quiz for a young learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The quiz questions, in the order they should be asked",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "integer",
							"description": "Question number starting at 1",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, one short sentence",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "2-4 short answer choices",
						},
						"correctAnswerIndex": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One friendly sentence explaining the answer",
						},
					},
					"required":             []any{"id", "question", "options", "correctAnswerIndex", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// CurriculumSchema defines the JSON schema for curriculum drafts.
var CurriculumSchema = &llm.Schema{
	Name:        "curriculum-draft",
	Description: "Fundamental learning topics for one grade and subject, one per week",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Topic name (2-5 words)",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "Short description of what is learned",
						},
						"week": map[string]any{
							"type":        "integer",
							"description": "Week number starting at 1",
						},
					},
					"required":             []any{"title", "description", "week"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"topics"},
		"additionalProperties": false,
	},
}
