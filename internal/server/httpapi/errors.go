package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trackvers/trackvers/internal/common"
)

// writeError maps service sentinels to HTTP statuses. The body is always
// {"error": "..."} so the client gateway can normalize it into one error
// shape.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, common.ErrorValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRefreshTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		status = http.StatusForbidden
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		// do not leak internals to the client
		msg = "internal error"
	}

	c.JSON(status, gin.H{"error": msg})
}
