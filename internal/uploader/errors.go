package uploader

import "fmt"

// 구조화된 응답을 받기 전에 네트워크 호출이 실패함
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upload to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Append endpoint가 success=false로 응답함. Message는 그대로 사용자에게 보여준다.
type RemoteRejection struct {
	Message string
}

func (e *RemoteRejection) Error() string {
	return "upload rejected: " + e.Message
}
