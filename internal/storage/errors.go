package storage

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("record not found")

// 로컬 저장소 트랜잭션 실패
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
