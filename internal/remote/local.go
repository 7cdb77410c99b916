package remote

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// 로컬 디렉터리 저장소 (개발/단일 서버 배포용)
type LocalDir struct {
	dir string
}

func NewLocalDir(dir string) (*LocalDir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalDir{dir: dir}, nil
}

func (l *LocalDir) resolve(remotePath string) string {
	return filepath.Join(l.dir, filepath.FromSlash(filepath.Clean("/"+remotePath)))
}

func (l *LocalDir) Download(ctx context.Context, remotePath string) (string, bool, error) {
	data, err := os.ReadFile(l.resolve(remotePath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// 임시 파일에 쓰고 rename 해서 덮어쓴다
func (l *LocalDir) Upload(ctx context.Context, remotePath string, content string) error {
	target := l.resolve(remotePath)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
