/**
* Name: 			util.go
* Description: 		날짜, 숫자 입력, 디바이스 ID 관련 공용 함수
 */
package util

import (
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// UTC 기준 YYYY-MM-DD
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// ISO-8601 (밀리초, UTC)
func Timestamp(now time.Time) string {
	return now.UTC().Format(TimestampLayout)
}

// 디바이스 식별자 생성: device_<uuid>
func NewClientID() string {
	return "device_" + uuid.New().String()
}
