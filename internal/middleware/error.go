package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/medcore/hospital-api/pkg/errors"
)

// ErrorHandler renders errors attached via c.Error. Validation failures
// render as one message list per field; everything else as a detail
// message. Persistence failures are fatal to the request only.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		lastErr := c.Errors.Last().Err

		appErr, ok := apperrors.AsAppError(lastErr)
		if !ok {
			appErr = apperrors.Internal(lastErr)
		}

		if appErr.StatusCode() >= 500 {
			log.Error().
				Err(lastErr).
				Str("request_id", c.GetString(ContextRequestID)).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request failed")
		}

		if c.Writer.Written() {
			return
		}

		if appErr.Code == apperrors.ErrValidation {
			c.JSON(http.StatusBadRequest, appErr.Fields)
			return
		}
		c.JSON(appErr.StatusCode(), gin.H{"detail": appErr.Message})
	}
}
