package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/celebration/internal/models"
	"github.com/joshua-takyi/celebration/internal/services"
)

// respondError maps err onto the API error taxonomy. Anything unrecognised is attached to
// the context so the ErrorHandler middleware logs it and answers 500.
func respondError(c *gin.Context, err error, entity string) {
	var verr *models.ValidationError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ValidationResponse(verr))
	case errors.Is(err, models.ErrDuplicate):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(entity+" already exists"))
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid credentials"))
	case errors.Is(err, services.ErrMissingFile):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrMissingToken), errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("Invalid token"))
	case errors.Is(err, services.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("Token expired"))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(entity+" not found"))
	case errors.Is(err, services.ErrPayloadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse("File too large"))
	case errors.As(err, &maxErr):
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse("Request body too large"))
	case errors.Is(err, services.ErrUnsupportedMediaType):
		c.JSON(http.StatusUnsupportedMediaType, models.ErrorResponse("Only JPEG, PNG, GIF and WebP images are allowed"))
	default:
		_ = c.Error(err)
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse(message))
}
