package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/normalizer"
	"taxidispatch/pkg/reqctx"
)

func statusOf(code apperr.Code) int {
	switch code {
	case apperr.CodeValidation:
		return http.StatusBadRequest
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeNoOp:
		return http.StatusConflict
	case apperr.CodeMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusServiceUnavailable
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	if !apperr.IsUserError(err) {
		h.log.Error("request failed", append(reqctx.Fields(c.Request.Context()),
			logger.String("path", c.FullPath()), logger.Error(err))...)
	}
	c.AbortWithStatusJSON(statusOf(code), gin.H{
		"error":   code,
		"message": apperr.UserMessage(err),
	})
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("%s %q is not a valid identifier", name, c.Param(name))
	}
	return id, nil
}

func queryDate(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := normalizer.ParseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return apperr.Validation("request body is not valid JSON: %v", err)
	}
	return nil
}
