package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// QuizRequest asks for the next quiz question. Both fields are required;
// a nil slice means previous_questions was absent or null.
type QuizRequest struct {
	PreviousQuestions []int         `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// QuizCategory selects the quiz category. An ID of 0 means every category.
type QuizCategory struct {
	ID   *flexInt `json:"id"`
	Type string   `json:"type,omitempty"`
}

// QuizResponse carries the next question, or null when none is left
type QuizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
}

// PlayQuiz handles POST /quizzes
func (h *TriviaHandler) PlayQuiz(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return badRequest(err)
	}

	var req QuizRequest
	if err := decodeBody(body, &req); err != nil {
		return badRequest(err)
	}
	if req.PreviousQuestions == nil || req.QuizCategory == nil {
		return badRequest(errors.New("previous_questions and quiz_category are required"))
	}
	if req.QuizCategory.ID == nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity).
			SetInternal(errors.New("quiz_category has no id"))
	}

	question, err := h.service.NextQuizQuestion(c.Request().Context(), req.PreviousQuestions, int(*req.QuizCategory.ID))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, QuizResponse{
		Success:  true,
		Question: question,
	})
}
