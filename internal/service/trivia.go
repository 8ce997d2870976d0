package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// Question feed event types
const (
	EventQuestionCreated = "question_created"
	EventQuestionDeleted = "question_deleted"
)

// Publisher delivers question events to connected clients
type Publisher interface {
	Publish(eventType string, payload any)
}

// QuestionPage is one page of a question listing
type QuestionPage struct {
	Questions       []*domain.Question
	TotalQuestions  int
	Categories      map[int]string // only set for the unfiltered listing
	CurrentCategory *string
}

// CreateQuestionInput holds the fields of a new question
type CreateQuestionInput struct {
	Question   string
	Answer     string
	Difficulty int
	Category   int
}

// TriviaService implements categories, question management and quiz play
type TriviaService struct {
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
	publisher  Publisher

	// pick returns a uniform random index in [0, n)
	pick func(n int) int
}

// NewTriviaService creates a new trivia service
func NewTriviaService(categories domain.CategoryRepository, questions domain.QuestionRepository, publisher Publisher) *TriviaService {
	return &TriviaService{
		categories: categories,
		questions:  questions,
		publisher:  publisher,
		pick:       rand.Intn,
	}
}

// Categories returns every category as an id to name mapping
func (s *TriviaService) Categories(ctx context.Context) (map[int]string, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CategoryMap(categories), nil
}

// ListQuestions returns a page of all questions. An empty page is ErrNotFound.
func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	all, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	current := paginate(all, page)
	if len(current) == 0 {
		return nil, ErrNotFound
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:      current,
		TotalQuestions: len(all),
		Categories:     categories,
	}, nil
}

// QuestionsByCategory returns a page of the questions in a category.
// Unlike ListQuestions an empty page is not an error.
func (s *TriviaService) QuestionsByCategory(ctx context.Context, categoryID, page int) (*QuestionPage, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	all, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnprocessable, err)
	}

	return &QuestionPage{
		Questions:       paginate(all, page),
		TotalQuestions:  len(all),
		CurrentCategory: &category.Type,
	}, nil
}

// SearchQuestions returns a page of the questions whose text contains term,
// ignoring case. An empty term matches every question.
func (s *TriviaService) SearchQuestions(ctx context.Context, term string, page int) (*QuestionPage, error) {
	all, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnprocessable, err)
	}

	return &QuestionPage{
		Questions:      paginate(all, page),
		TotalQuestions: len(all),
	}, nil
}

// CreateQuestion stores a new question and returns its ID
func (s *TriviaService) CreateQuestion(ctx context.Context, in CreateQuestionInput) (int, error) {
	if in.Question == "" || in.Answer == "" || in.Difficulty == 0 || in.Category == 0 {
		return 0, ErrBadRequest
	}

	question := &domain.Question{
		Question:   in.Question,
		Answer:     in.Answer,
		Difficulty: in.Difficulty,
		Category:   in.Category,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnprocessable, err)
	}

	s.publisher.Publish(EventQuestionCreated, question)

	return question.ID, nil
}

// DeleteQuestion removes a question by ID
func (s *TriviaService) DeleteQuestion(ctx context.Context, id int) error {
	if _, err := s.questions.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %w", ErrUnprocessable, err)
	}

	s.publisher.Publish(EventQuestionDeleted, map[string]int{"id": id})

	return nil
}
