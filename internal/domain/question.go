package domain

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List retrieves all questions ordered by ID
	List(ctx context.Context) ([]*Question, error)

	// ListByCategory retrieves all questions belonging to a category
	ListByCategory(ctx context.Context, categoryID int) ([]*Question, error)

	// Search retrieves the questions whose text contains term, ignoring case
	Search(ctx context.Context, term string) ([]*Question, error)

	// ListExcluding retrieves the questions whose ID is not in excludeIDs.
	// A categoryID of 0 matches every category.
	ListExcluding(ctx context.Context, excludeIDs []int, categoryID int) ([]*Question, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Create creates a new question and sets its ID
	Create(ctx context.Context, question *Question) error

	// Delete deletes a question
	Delete(ctx context.Context, id int) error
}

// Question represents a trivia question
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int    `json:"category"`
}
