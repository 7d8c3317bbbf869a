package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ogurasousui/contratacao-empresa/internal/adapters/http/middleware"
	"github.com/ogurasousui/contratacao-empresa/internal/core/company"
	"github.com/ogurasousui/contratacao-empresa/internal/core/employee"
)

// ErrorResponse はエラー時のレスポンス形式です。
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

var errMalformedBody = errors.New("malformed JSON body")

func statusOf(err error) int {
	switch {
	case errors.Is(err, company.ErrInvalidName),
		errors.Is(err, company.ErrInvalidCNPJ),
		errors.Is(err, company.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidCompanyID),
		errors.Is(err, employee.ErrInvalidName),
		errors.Is(err, employee.ErrInvalidRole),
		errors.Is(err, employee.ErrInvalidCPF),
		errors.Is(err, errMalformedBody):
		return http.StatusBadRequest
	case errors.Is(err, company.ErrCompanyNotFound),
		errors.Is(err, employee.ErrCompanyNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound):
		return http.StatusNotFound
	case errors.Is(err, company.ErrCNPJAlreadyExists),
		errors.Is(err, company.ErrNameAlreadyExists),
		errors.Is(err, employee.ErrCPFAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError はエラーを HTTP ステータスと JSON ボディへ変換します。
// 500 系は内部情報を返さずにログへ記録します。
func writeError(c echo.Context, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, fromValidationErrors(ve))
	}

	var pe *paramError
	if errors.As(err, &pe) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: pe.Error()})
	}

	code := statusOf(err)
	if code == http.StatusInternalServerError {
		requestID, _ := c.Get(middleware.RequestIDKey).(string)
		slog.ErrorContext(c.Request().Context(), "request failed",
			slog.String("request_id", requestID),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		return c.JSON(code, ErrorResponse{Message: "internal server error"})
	}

	return c.JSON(code, ErrorResponse{Message: err.Error()})
}

func fromValidationErrors(ve validator.ValidationErrors) ErrorResponse {
	problems := make(map[string][]string, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "this field is required")
		case "len":
			problems[field] = append(problems[field], "must have exactly "+fe.Param()+" characters")
		default:
			problems[field] = append(problems[field], "invalid value provided")
		}
	}
	return ErrorResponse{Message: "validation failed", Errors: problems}
}
