package middleware

import (
	"errors"
	"net/http"

	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"
	"github.com/leeman-woodside/ai-quiz-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorDetail is the inner error object of every failure response.
type ErrorDetail struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Errors  []domain.ValidationError `json:"errors,omitempty"`
	Context map[string]interface{}   `json:"context,omitempty"`
}

// ErrorResponse is the failure envelope: {"detail": {"code": ..., "message": ...}}.
type ErrorResponse struct {
	Detail ErrorDetail `json:"detail"`
}

// ErrorHandler is the centralized Fiber error handler. It maps validation
// errors to 400, coded domain errors to their HTTP status (upstream failures
// to 502), and anything unrecognized to 500.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Request validation failed",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Detail: ErrorDetail{
					Code:    string(domain.CodeValidation),
					Message: "Request validation failed",
					Errors:  validationErrs,
				},
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			log.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			)

			return c.Status(statusCode).JSON(ErrorResponse{
				Detail: ErrorDetail{
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Context: domainErr.Context,
				},
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Detail: ErrorDetail{
					Code:    "HTTP_ERROR",
					Message: fiberErr.Message,
				},
			})
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Detail: ErrorDetail{
				Code:    string(domain.CodeInternal),
				Message: "Internal server error",
			},
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeValidation, domain.CodeMissingField, domain.CodeInvalidFormat, domain.CodeOutOfRange:
		return http.StatusBadRequest
	case domain.CodeLLMUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
