package errcode

// 导出通知中的错误码：
// - 0：成功
// - 4xxx：输入或资源问题，重试无效
// - 5xxx：系统错误，任务会重试
const (
	OK              = 0
	ResourceMissing = 4004
	SystemError     = 5000
	RenderFailed    = 5001
	UploadFailed    = 5002
)

// Retryable 判断该错误码对应的失败是否值得重试。
func Retryable(code int) bool {
	return code >= 5000
}

// Message 返回可展示给用户的错误描述。
func Message(code int) string {
	switch code {
	case OK:
		return ""
	case ResourceMissing:
		return "resource not found"
	case RenderFailed:
		return "failed to render document"
	case UploadFailed:
		return "failed to store exported file"
	default:
		return "export failed, please try again"
	}
}
