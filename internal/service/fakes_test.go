package service

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

var errStore = errors.New("connection reset")

type memoryStore struct {
	mu         sync.Mutex
	categories []*domain.Category
	questions  map[int]*domain.Question
	nextID     int

	failQuery bool
	failWrite bool
}

func newMemoryStore(categoryNames ...string) *memoryStore {
	s := &memoryStore{questions: map[int]*domain.Question{}, nextID: 1}
	for i, name := range categoryNames {
		s.categories = append(s.categories, &domain.Category{ID: i + 1, Type: name})
	}
	return s
}

func (s *memoryStore) add(text string, category int) *domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := &domain.Question{ID: s.nextID, Question: text, Answer: "answer", Difficulty: 1, Category: category}
	s.questions[q.ID] = q
	s.nextID++
	return q
}

func (s *memoryStore) sorted(keep func(*domain.Question) bool) []*domain.Question {
	out := []*domain.Question{}
	for _, q := range s.questions {
		if keep(q) {
			cp := *q
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type categoryRepo struct{ *memoryStore }

func (r categoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	if r.failQuery {
		return nil, errStore
	}
	return slices.Clone(r.categories), nil
}

func (r categoryRepo) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

type questionRepo struct{ *memoryStore }

func (r questionRepo) List(ctx context.Context) ([]*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failQuery {
		return nil, errStore
	}
	return r.sorted(func(*domain.Question) bool { return true }), nil
}

func (r questionRepo) ListByCategory(ctx context.Context, categoryID int) ([]*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failQuery {
		return nil, errStore
	}
	return r.sorted(func(q *domain.Question) bool { return q.Category == categoryID }), nil
}

func (r questionRepo) Search(ctx context.Context, term string) ([]*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failQuery {
		return nil, errStore
	}
	term = strings.ToLower(term)
	return r.sorted(func(q *domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), term)
	}), nil
}

func (r questionRepo) ListExcluding(ctx context.Context, excludeIDs []int, categoryID int) ([]*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failQuery {
		return nil, errStore
	}
	return r.sorted(func(q *domain.Question) bool {
		if slices.Contains(excludeIDs, q.ID) {
			return false
		}
		return categoryID == 0 || q.Category == categoryID
	}), nil
}

func (r questionRepo) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	cp := *q
	return &cp, nil
}

func (r questionRepo) Create(ctx context.Context, question *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errStore
	}
	found := false
	for _, c := range r.categories {
		found = found || c.ID == question.Category
	}
	if !found {
		return domain.ErrCategoryNotFound
	}
	question.ID = r.nextID
	r.nextID++
	cp := *question
	r.questions[cp.ID] = &cp
	return nil
}

func (r questionRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errStore
	}
	if _, ok := r.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(r.questions, id)
	return nil
}

type event struct {
	Type    string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event
}

func (p *recordingPublisher) Publish(eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event{eventType, payload})
}

func newTestService(store *memoryStore) (*TriviaService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewTriviaService(categoryRepo{store}, questionRepo{store}, pub), pub
}
