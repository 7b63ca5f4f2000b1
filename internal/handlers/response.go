package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Response is the envelope of every API answer.
type Response struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// hideInternalErrorsKey is the context flag read by respondError.
const hideInternalErrorsKey = "hideInternalErrors"

// errorExposure installs whether 5xx messages are replaced with a generic text.
func errorExposure(hide bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(hideInternalErrorsKey, hide)
		c.Next()
	}
}

func respondOK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Response{Success: true, Data: data, Message: message})
}

// respondError maps err onto the status code and envelope of the API.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
		if c.GetBool(hideInternalErrorsKey) {
			msg = "Internal server error"
		}
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(status, Response{Success: false, Message: msg})
}

// respondBindError answers a request whose body or query failed binding.
// Field level validation failures are reported per field with 422.
func respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Response{Success: false, Message: "Validation failed", Errors: fields})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request format: " + err.Error()})
}

// requireActor returns the authenticated caller or answers 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Success: false, Message: "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}
