package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/service"
)

// searchRequest selects search mode when SearchTerm is present and not null
type searchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

// CreateQuestionRequest represents the request to create a new question.
// required rejects empty strings and zero numbers.
type CreateQuestionRequest struct {
	Question   string  `json:"question" validate:"required"`
	Answer     string  `json:"answer" validate:"required"`
	Difficulty flexInt `json:"difficulty" validate:"required"`
	Category   flexInt `json:"category" validate:"required"`
}

// CreatedResponse carries the ID of a new question
type CreatedResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
}

// DeletedResponse carries the ID of a removed question
type DeletedResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

// CreateOrSearchQuestions handles POST /questions. A body with a searchTerm
// searches; any other body creates a question.
func (h *TriviaHandler) CreateOrSearchQuestions(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return badRequest(err)
	}

	var search searchRequest
	if err := decodeBody(body, &search); err != nil {
		return badRequest(err)
	}
	if search.SearchTerm != nil {
		return h.searchQuestions(c, *search.SearchTerm)
	}

	var req CreateQuestionRequest
	if err := decodeBody(body, &req); err != nil {
		return badRequest(err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err)
	}

	id, err := h.service.CreateQuestion(c.Request().Context(), service.CreateQuestionInput{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: int(req.Difficulty),
		Category:   int(req.Category),
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{
		Success: true,
		Created: id,
	})
}

func (h *TriviaHandler) searchQuestions(c echo.Context, term string) error {
	page, err := h.service.SearchQuestions(c.Request().Context(), term, pageParam(c))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, newQuestionsResponse(page))
}

// DeleteQuestion handles DELETE /questions/:id
func (h *TriviaHandler) DeleteQuestion(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteQuestion(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, DeletedResponse{
		Success: true,
		Deleted: id,
	})
}
