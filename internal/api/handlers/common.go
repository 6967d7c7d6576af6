package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)

	var ae *apperr.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    apperr.CodeInternal,
		Message: http.StatusText(status),
	})
}

func queryLimit(c *gin.Context, def, max int) int {
	limit := def
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > max {
		limit = max
	}
	return limit
}
