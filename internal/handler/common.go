package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/service"
)

// errorMessages are the fixed messages of the error envelope
var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusInternalServerError: "internal server error",
}

// ErrorResponse is the envelope of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// ErrorHandler renders every error as an ErrorResponse. Details of the
// underlying error are logged and never sent to the client.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}

		fields := []zap.Field{
			zap.Int("status", code),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		}
		switch {
		case code >= http.StatusInternalServerError:
			logger.Error("request failed", fields...)
		case code == http.StatusUnprocessableEntity:
			logger.Warn("request failed", fields...)
		}

		message, ok := errorMessages[code]
		if !ok {
			message = strings.ToLower(http.StatusText(code))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ErrorResponse{Success: false, Error: code, Message: message})
		}
		if err != nil {
			logger.Error("failed to write error response", zap.Error(err))
		}
	}
}

// serviceError maps service errors to HTTP errors
func serviceError(err error) error {
	switch {
	case errors.Is(err, service.ErrBadRequest):
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	case errors.Is(err, service.ErrUnprocessable):
		return echo.NewHTTPError(http.StatusUnprocessableEntity).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
}

// RequestValidator adapts go-playground/validator to echo
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a new request validator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate validates a struct using its validate tags
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// readBody returns the raw JSON body. A missing body, null or an empty
// object is rejected the same way as malformed JSON.
func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if len(fields) == 0 {
		return nil, errors.New("empty request body")
	}

	return body, nil
}

// decodeBody decodes an already validated body into dst
func decodeBody(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(dst)
}

// pageParam reads the 1-based page query parameter, defaulting to 1
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return 1
	}
	return page
}

// idParam reads an integer path parameter. Non-integer ids do not match any
// resource, so they are reported as not found.
func idParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	}
	return id, nil
}

// flexInt accepts a JSON number or a numeric string. Clients send category
// ids both ways.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	var num json.Number
	switch v := raw.(type) {
	case json.Number:
		num = v
	case string:
		num = json.Number(strings.TrimSpace(v))
	default:
		return fmt.Errorf("expected integer, got %s", b)
	}

	if n, err := num.Int64(); err == nil {
		*f = flexInt(n)
		return nil
	}
	x, err := num.Float64()
	if err != nil || x != math.Trunc(x) {
		return fmt.Errorf("expected integer, got %s", b)
	}
	*f = flexInt(x)
	return nil
}
