package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
)

// respondError maps a service error to the response envelope. Internal
// errors get a generic message so causes never leak to clients.
func respondError(c *gin.Context, err error) {
	status, code := apperrors.StatusAndCode(err)

	message := "internal server error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && status < http.StatusInternalServerError {
		message = appErr.Message
	} else if status < http.StatusInternalServerError {
		message = err.Error()
	}

	c.JSON(status, dto.Error(message, code))
}

// respondBindError maps a binding failure to a validation envelope.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Error("invalid request format: "+err.Error(), apperrors.CodeValidation))
}
