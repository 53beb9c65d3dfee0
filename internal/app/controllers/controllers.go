package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acortes/biblioteca/internal/app/models/dto"
)

// parseIDParam reads a UUID path parameter, responding 400 on a bad value.
// The second return value reports whether parsing succeeded.
func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier")
		errorDetail = errorDetail.WithField(name).WithDetails(name + " must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// respondData writes the standard success envelope
func respondData(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}
