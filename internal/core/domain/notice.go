package domain

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a short user-facing message, the equivalent of a toast.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}
