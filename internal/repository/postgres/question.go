package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// foreignKeyViolation is the SQLSTATE raised when questions.category
// references a missing category
const foreignKeyViolation = "23503"

const questionColumns = `id, question, answer, difficulty, category`

// QuestionRepository implements the domain.QuestionRepository interface
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		pool: pool,
	}
}

// List retrieves all questions ordered by ID
func (r *QuestionRepository) List(ctx context.Context) ([]*domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return collectQuestions(rows)
}

// ListByCategory retrieves all questions belonging to a category
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]*domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE category = $1
		ORDER BY id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions for category %d: %w", categoryID, err)
	}
	return collectQuestions(rows)
}

// Search retrieves the questions whose text contains term, ignoring case.
// LIKE wildcards in term match literally.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]*domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE question ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY id
	`, escapeLike(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return collectQuestions(rows)
}

// ListExcluding retrieves the questions whose ID is not in excludeIDs,
// restricted to categoryID unless it is 0
func (r *QuestionRepository) ListExcluding(ctx context.Context, excludeIDs []int, categoryID int) ([]*domain.Question, error) {
	// A NULL array would make the predicate NULL and filter everything out
	if excludeIDs == nil {
		excludeIDs = []int{}
	}

	query := `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE NOT (id = ANY($1))`
	args := []any{excludeIDs}

	if categoryID != 0 {
		query += ` AND category = $2`
		args = append(args, categoryID)
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list remaining questions: %w", err)
	}
	return collectQuestions(rows)
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	var question domain.Question
	err := r.pool.QueryRow(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE id = $1
	`, id).Scan(
		&question.ID,
		&question.Question,
		&question.Answer,
		&question.Difficulty,
		&question.Category,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

// Create creates a new question
func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	query := `
		INSERT INTO questions (question, answer, difficulty, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		question.Question,
		question.Answer,
		question.Difficulty,
		question.Category,
	).Scan(&question.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("failed to create question: %w", domain.ErrCategoryNotFound)
		}
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// Delete deletes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func collectQuestions(rows pgx.Rows) ([]*domain.Question, error) {
	defer rows.Close()

	questions := []*domain.Question{}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Difficulty, &q.Category); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, &q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
