package response

import (
	"net/http"
	"strings"

	"github.com/mission-tool/blog-web/internal/constants"

	"github.com/gin-gonic/gin"
)

// Response JSON 统一响应结构
type Response struct {
	StatusCode int         `json:"status_code"` // 业务状态码
	Msg        string      `json:"msg"`         // 提示消息
	Data       interface{} `json:"data"`        // 数据内容
}

// ErrorPage 错误页模板数据
type ErrorPage struct {
	Code    int
	Message string
}

// ErrorTemplate 错误页模板名
const ErrorTemplate = "error"

// NoStore 禁止缓存，保证跳转后的页面重新拉取
func NoStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
}

// HTML 渲染页面
func HTML(c *gin.Context, status int, name string, data interface{}) {
	NoStore(c)
	c.HTML(status, name, data)
}

// SeeOther 表单提交成功后的跳转
func SeeOther(c *gin.Context, location string) {
	NoStore(c)
	c.Redirect(http.StatusSeeOther, location)
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
	})
}

// Error 错误响应：JSON 请求返回统一结构，其余渲染错误页
func Error(c *gin.Context, code int, msg string) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(HTTPStatus(code), Response{
			StatusCode: code,
			Msg:        msg,
			Data:       attachRequestID(c, nil),
		})
		return
	}
	NoStore(c)
	c.HTML(HTTPStatus(code), ErrorTemplate, NewPage(c, "error.title", ErrorPage{
		Code:    code,
		Message: msg,
	}))
	c.Abort()
}

// WantsJSON 请求是否期望 JSON
func WantsJSON(c *gin.Context) bool {
	if c == nil || c.Request == nil {
		return false
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// RequestID 读取当前请求 ID
func RequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

func attachRequestID(c *gin.Context, data interface{}) interface{} {
	requestID := RequestID(c)
	if requestID == "" {
		return data
	}
	if data == nil {
		return gin.H{"request_id": requestID}
	}
	return data
}
