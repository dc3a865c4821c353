package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rustico-backend/apperr"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONDomainError maps the apperr taxonomy to HTTP status codes.
func JSONDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		JSONError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrValidation):
		JSONError(c, http.StatusBadRequest, err.Error())
	default:
		JSONError(c, http.StatusInternalServerError, err.Error())
	}
}
