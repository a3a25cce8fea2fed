package controller

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/organized-life/backend/internal/domain/entity"
	"github.com/organized-life/backend/internal/integration/entrypoint/dto"
)

// parseIDParam reads a UUID path parameter, answering 400 when it is malformed.
func parseIDParam(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + label + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseDate parses a YYYY-MM-DD value into midnight UTC.
func parseDate(value string) (time.Time, error) {
	return time.Parse(entity.DateLayout, value)
}

// parseOptionalDate parses value when present.
func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// respondInternalError logs err and answers 500 without exposing it.
func respondInternalError(ctx *gin.Context, err error) {
	slog.ErrorContext(ctx.Request.Context(), "request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// queryPtr returns the query value or nil when it is absent.
func queryPtr(ctx *gin.Context, key string) *string {
	if value, ok := ctx.GetQuery(key); ok && value != "" {
		return &value
	}
	return nil
}
