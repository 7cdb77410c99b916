package remote

import "context"

// 원격 파일 저장소. 경로는 "/root/filename" 형태.
type Store interface {
	// found=false면 해당 경로에 파일이 없음
	Download(ctx context.Context, path string) (content string, found bool, err error)
	// 항상 덮어쓰기
	Upload(ctx context.Context, path string, content string) error
}
