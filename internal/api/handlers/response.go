package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocomet/rides-api/internal/api/dto"
	"github.com/gocomet/rides-api/internal/api/middleware"
	apperrors "github.com/gocomet/rides-api/pkg/errors"
	"github.com/gocomet/rides-api/pkg/logger"
)

// status returns code, or 200 in legacy mode
func (h *Handlers) status(code int) int {
	if h.opts.LegacyResponses {
		return http.StatusOK
	}
	return code
}

// respondJSON sends a successful JSON response
func (h *Handlers) respondJSON(c *gin.Context, code int, data any) {
	c.JSON(h.status(code), data)
}

// respondError maps err to its error_code body. Server error causes are
// logged and recorded on the gin context, never sent to the client.
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)

	if appErr.Status >= http.StatusInternalServerError {
		h.Logger.Error("Request failed",
			logger.String("request_id", middleware.RequestID(c)),
			logger.String("method", c.Request.Method),
			logger.String("path", c.FullPath()),
			logger.Err(err),
		)
		_ = c.Error(err)
	} else {
		h.Logger.Debug("Request rejected",
			logger.String("request_id", middleware.RequestID(c)),
			logger.String("error_code", appErr.Code),
			logger.String("message", appErr.Message),
		)
	}

	c.JSON(h.status(appErr.Status), dto.ErrorResponse{
		ErrorCode: appErr.Code,
		Message:   appErr.Message,
	})
}
