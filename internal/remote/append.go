/**
* Name: 			append.go
* Description: 		CSV 페이로드를 같은 이름의 원격 파일 뒤에 이어 붙임
* Workflow: 		Download -> JoinContent -> Upload(overwrite)
 */
package remote

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const bom = "\uFEFF"

var (
	ErrInvalidFilename = errors.New("invalid filename")
	ErrEmptyPayload    = errors.New("missing filename or data")
)

type Appender struct {
	store  Store
	root   string
	logger logrus.FieldLogger

	// 같은 파일에 대한 read-modify-write 직렬화 (프로세스 내부)
	locks sync.Map
}

func NewAppender(store Store, root string, logger logrus.FieldLogger) *Appender {
	return &Appender{
		store:  store,
		root:   "/" + strings.Trim(root, "/"),
		logger: logger,
	}
}

// 디렉터리 이동이 불가능한 원격 경로
func (a *Appender) Path(filename string) (string, error) {
	name := strings.TrimSpace(filename)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return path.Join(a.root, name), nil
}

func (a *Appender) Append(ctx context.Context, filename, csvData string) error {
	if strings.TrimSpace(filename) == "" || strings.TrimSpace(csvData) == "" {
		return ErrEmptyPayload
	}
	remotePath, err := a.Path(filename)
	if err != nil {
		return err
	}

	mu, _ := a.locks.LoadOrStore(remotePath, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	defer mu.(*sync.Mutex).Unlock()

	log := a.logger.WithField("path", remotePath)

	existing, found, err := a.store.Download(ctx, remotePath)
	if err != nil {
		return fmt.Errorf("Append(): download %s: %w", remotePath, err)
	}
	if found {
		log.Info("Append(): file exists, appending")
	} else {
		log.Info("Append(): file does not exist yet, creating")
	}

	if err := a.store.Upload(ctx, remotePath, JoinContent(existing, csvData)); err != nil {
		return fmt.Errorf("Append(): upload %s: %w", remotePath, err)
	}
	log.Info("Append(): csv appended")
	return nil
}

// 이음매에 줄바꿈이 정확히 하나 남도록 양쪽을 정리한다.
// BOM은 파일 맨 앞에만 둔다.
func JoinContent(existing, payload string) string {
	payload = strings.TrimSpace(payload)
	existing = strings.TrimSpace(existing)
	if existing == "" || existing == bom {
		return payload + "\n"
	}
	return existing + "\n" + strings.TrimPrefix(payload, bom) + "\n"
}
