package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/tradepost/backend/internal/service"
	"github.com/tradepost/backend/pkg/logger"
	"go.uber.org/zap"
)

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

// serviceErrorResponse maps the service sentinels to HTTP responses; an
// unrecognized error is logged and reported as a generic 500 so internal
// details never leak to the client.
func serviceErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		errorResponse(c, http.StatusBadRequest, InvalidEmailCode)
	case errors.Is(err, service.ErrInvalidPhone):
		errorResponse(c, http.StatusBadRequest, InvalidPhoneCode)
	case errors.Is(err, service.ErrCodeNotFound):
		errorResponse(c, http.StatusNotFound, CodeNotFoundCode)
	case errors.Is(err, service.ErrCodeExpired):
		errorResponse(c, http.StatusBadRequest, CodeExpiredCode)
	case errors.Is(err, service.ErrCodeMismatch):
		errorResponse(c, http.StatusBadRequest, CodeMismatchCode)
	case errors.Is(err, service.ErrCodeConsumed):
		errorResponse(c, http.StatusConflict, CodeConsumedCode)
	case errors.Is(err, service.ErrTooManyAttempts):
		errorResponse(c, http.StatusTooManyRequests, TooManyAttemptsCode)
	case errors.Is(err, service.ErrRecordNotFound):
		errorResponse(c, http.StatusNotFound, RecordNotFoundCode)
	case errors.Is(err, service.ErrInvalidTransition):
		errorResponse(c, http.StatusConflict, InvalidTransitionCode)
	case errors.Is(err, service.ErrDispatchFailed):
		errorResponse(c, http.StatusBadGateway, DispatchFailedCode)
	default:
		logger.Error("unhandled service error", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
	}
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		out := make([]ValidationError, len(verr))
		for i, ferr := range verr {
			out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		response := ValidationErrorStruct{
			ErrorCode:    6000,
			ErrorMessage: "Validation error",
		}
		response.Errors = out
		c.AbortWithStatusJSON(http.StatusBadRequest, response)
		return
	}

	errorResponse(c, http.StatusBadRequest, UnknownErrorCode)
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum length for this field is %v", value)
	case "max":
		return fmt.Sprintf("Maximum length for this field is %v", value)
	case "phonenumber":
		return "Phone number must be in international format"
	}
	return tag
}
