package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

const dropboxContentURL = "https://content.dropboxapi.com/2"

// Dropbox API 에러 응답
type DropboxError struct {
	Status  int
	Summary string
}

func (e *DropboxError) Error() string {
	return fmt.Sprintf("dropbox: %d %s", e.Status, e.Summary)
}

// Dropbox content API 저장소. httpClient는 oauth2 토큰을 붙여주는 클라이언트여야 한다.
type Dropbox struct {
	httpClient *http.Client
	contentURL string
}

func NewDropbox(httpClient *http.Client) *Dropbox {
	return NewDropboxWithURL(httpClient, dropboxContentURL)
}

func NewDropboxWithURL(httpClient *http.Client, contentURL string) *Dropbox {
	return &Dropbox{httpClient: httpClient, contentURL: strings.TrimRight(contentURL, "/")}
}

func (d *Dropbox) Download(ctx context.Context, remotePath string) (string, bool, error) {
	resp, err := d.call(ctx, "/files/download", map[string]string{"path": remotePath}, nil, "")
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, err
	}

	if resp.StatusCode == http.StatusOK {
		return string(body), true, nil
	}

	// 409 path/not_found 만 "파일 없음"으로 본다. 나머지 실패를 없음으로 처리하면 기존 파일을 덮어쓸 수 있다.
	dbxErr := parseDropboxError(resp.StatusCode, body)
	if resp.StatusCode == http.StatusConflict && strings.HasPrefix(dbxErr.Summary, "path/not_found") {
		return "", false, nil
	}
	return "", false, dbxErr
}

func (d *Dropbox) Upload(ctx context.Context, remotePath string, content string) error {
	arg := map[string]string{"path": remotePath, "mode": "overwrite"}
	resp, err := d.call(ctx, "/files/upload", arg, strings.NewReader(content), "application/octet-stream")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return parseDropboxError(resp.StatusCode, body)
	}
	return nil
}

func (d *Dropbox) call(ctx context.Context, endpoint string, arg map[string]string, body io.Reader, contentType string) (*http.Response, error) {
	argJSON, err := json.Marshal(arg)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.contentURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Dropbox-API-Arg", asciiJSON(argJSON))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return d.httpClient.Do(req)
}

func parseDropboxError(status int, body []byte) *DropboxError {
	var payload struct {
		ErrorSummary string `json:"error_summary"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.ErrorSummary == "" {
		return &DropboxError{Status: status, Summary: strings.TrimSpace(string(body))}
	}
	return &DropboxError{Status: status, Summary: payload.ErrorSummary}
}

// HTTP 헤더에는 ASCII만 들어갈 수 있어서 비ASCII 문자는 \uXXXX 로 바꾼다
func asciiJSON(b []byte) string {
	var out bytes.Buffer
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r < utf8.RuneSelf {
			out.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			r1, r2 := utf16Surrogates(r)
			fmt.Fprintf(&out, `\u%04x\u%04x`, r1, r2)
			continue
		}
		fmt.Fprintf(&out, `\u%04x`, r)
	}
	return out.String()
}

func utf16Surrogates(r rune) (rune, rune) {
	r -= 0x10000
	return 0xD800 + (r>>10)&0x3FF, 0xDC00 + r&0x3FF
}
