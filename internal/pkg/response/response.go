package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the envelope every API endpoint answers with.
// code mirrors the HTTP status; data is present on success only.
type Body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK sends a 200 envelope.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{Code: http.StatusOK, Message: message, Data: data})
}

// BadRequest sends a 400 envelope.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Body{Code: http.StatusBadRequest, Message: message})
}

// Unauthorized sends a 401 envelope.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "未登录，请先登录"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, Body{Code: http.StatusUnauthorized, Message: message})
}

// Forbidden sends a 403 envelope.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "无权限访问"
	}
	c.AbortWithStatusJSON(http.StatusForbidden, Body{Code: http.StatusForbidden, Message: message})
}

// NotFound sends a 404 envelope.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "资源不存在"
	}
	c.AbortWithStatusJSON(http.StatusNotFound, Body{Code: http.StatusNotFound, Message: message})
}

// InternalError sends a 500 envelope. The underlying error is attached to the
// gin context for the request logger, never leaked to the caller.
func InternalError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, Body{Code: http.StatusInternalServerError, Message: "服务器内部错误"})
}
