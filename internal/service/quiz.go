package service

import (
	"context"
	"fmt"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// AllCategories selects questions from every category in a quiz
const AllCategories = 0

// NextQuizQuestion picks a random question that is not in previous and, unless
// categoryID is AllCategories, belongs to categoryID. It returns nil without
// an error once no eligible question is left.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, previous []int, categoryID int) (*domain.Question, error) {
	remaining, err := s.questions.ListExcluding(ctx, previous, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnprocessable, err)
	}

	if len(remaining) == 0 {
		return nil, nil
	}

	return remaining[s.pick(len(remaining))], nil
}
