package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// TriviaService is the behavior the trivia handlers need
type TriviaService interface {
	Categories(ctx context.Context) (map[int]string, error)
	ListQuestions(ctx context.Context, page int) (*service.QuestionPage, error)
	QuestionsByCategory(ctx context.Context, categoryID, page int) (*service.QuestionPage, error)
	SearchQuestions(ctx context.Context, term string, page int) (*service.QuestionPage, error)
	CreateQuestion(ctx context.Context, in service.CreateQuestionInput) (int, error)
	DeleteQuestion(ctx context.Context, id int) error
	NextQuizQuestion(ctx context.Context, previous []int, categoryID int) (*domain.Question, error)
}

// TriviaHandler handles category, question and quiz requests
type TriviaHandler struct {
	service TriviaService
	quizMW  []echo.MiddlewareFunc
}

// NewTriviaHandler creates a new trivia handler. quizMiddleware wraps only the
// quiz route.
func NewTriviaHandler(service TriviaService, quizMiddleware ...echo.MiddlewareFunc) *TriviaHandler {
	return &TriviaHandler{
		service: service,
		quizMW:  quizMiddleware,
	}
}

// Register registers the trivia routes on g
func (h *TriviaHandler) Register(g *echo.Group) {
	g.GET("/categories", h.GetCategories)
	g.GET("/categories/:id/questions", h.GetQuestionsByCategory)
	g.GET("/questions", h.GetQuestions)
	g.POST("/questions", h.CreateOrSearchQuestions)
	g.DELETE("/questions/:id", h.DeleteQuestion)
	g.POST("/quizzes", h.PlayQuiz, h.quizMW...)
}

// CategoriesResponse lists every category by id
type CategoriesResponse struct {
	Success    bool           `json:"success"`
	Categories map[int]string `json:"categories"`
}

// QuestionsResponse is one page of questions
type QuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []*domain.Question `json:"questions"`
	TotalQuestions  int                `json:"totalQuestions"`
	Categories      map[int]string     `json:"categories,omitempty"`
	CurrentCategory *string            `json:"currentCategory"`
}

func newQuestionsResponse(page *service.QuestionPage) QuestionsResponse {
	return QuestionsResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.TotalQuestions,
		Categories:      page.Categories,
		CurrentCategory: page.CurrentCategory,
	}
}

// GetCategories handles GET /categories
func (h *TriviaHandler) GetCategories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, CategoriesResponse{
		Success:    true,
		Categories: categories,
	})
}

// GetQuestions handles GET /questions?page=N
func (h *TriviaHandler) GetQuestions(c echo.Context) error {
	page, err := h.service.ListQuestions(c.Request().Context(), pageParam(c))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, newQuestionsResponse(page))
}

// GetQuestionsByCategory handles GET /categories/:id/questions?page=N
func (h *TriviaHandler) GetQuestionsByCategory(c echo.Context) error {
	categoryID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	page, err := h.service.QuestionsByCategory(c.Request().Context(), categoryID, pageParam(c))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, newQuestionsResponse(page))
}
