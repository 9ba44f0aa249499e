package response

const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeNotFound        = 404
	CodeTooManyRequests = 429
	CodeInternal        = 500
	CodeBadGateway      = 502
)

// HTTPStatus 错误码对应的 HTTP 状态，页面响应使用
func HTTPStatus(code int) int {
	switch code {
	case CodeBadRequest, CodeUnauthorized, CodeNotFound, CodeTooManyRequests, CodeInternal, CodeBadGateway:
		return code
	case CodeOK:
		return 200
	default:
		return CodeInternal
	}
}
