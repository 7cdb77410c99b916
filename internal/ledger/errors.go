package ledger

import "errors"

var (
	ErrEmptyBatch     = errors.New("no entries to send")
	ErrSyncInProgress = errors.New("a sync is already in flight")
)

// 필수 세션 설정(작업자 번호)이 없음. 부수 효과 없이 작업이 중단된다.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func errMissingWorker() error {
	return &ConfigError{Field: "mitarbeiter", Message: "worker id (mitarbeiter) is not configured"}
}
