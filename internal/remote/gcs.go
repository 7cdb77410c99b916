package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Google Cloud Storage 버킷 저장소
type GCS struct {
	client *storage.Client
	bucket string
}

// credentialsJSON이 비어 있으면 ADC(GOOGLE_APPLICATION_CREDENTIALS 등)를 사용
func NewGCS(ctx context.Context, bucket, credentialsJSON string, opts ...option.ClientOption) (*GCS, error) {
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewGCS(): failed to create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func objectName(remotePath string) string {
	return strings.TrimPrefix(remotePath, "/")
}

func (g *GCS) Download(ctx context.Context, remotePath string) (string, bool, error) {
	r, err := g.client.Bucket(g.bucket).Object(objectName(remotePath)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (g *GCS) Upload(ctx context.Context, remotePath string, content string) error {
	wc := g.client.Bucket(g.bucket).Object(objectName(remotePath)).NewWriter(ctx)
	wc.ContentType = "text/csv; charset=utf-8"

	if _, err := io.WriteString(wc, content); err != nil {
		wc.Close()
		return fmt.Errorf("failed to upload to gcs: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close gcs writer: %w", err)
	}
	return nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
