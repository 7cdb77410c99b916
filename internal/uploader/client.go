/**
* Name: 			client.go
* Description: 		Append endpoint HTTP 클라이언트
* Workflow: 		{filename, csvData} POST -> {success, error} 응답 해석
 */
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"RieperLogistics_ScanLedger/internal/models"
)

const maxResponseBytes = 1 << 20

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// 테스트나 프록시 설정용
func NewClientWithHTTP(endpoint string, httpClient *http.Client) *Client {
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// 요청은 한 번만 보낸다. 재시도는 사용자 동작으로만 일어난다.
func (c *Client) Append(ctx context.Context, req models.AppendRequest) error {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return &TransportError{Endpoint: c.endpoint, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return &TransportError{Endpoint: c.endpoint, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &TransportError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Endpoint: c.endpoint, Err: err}
	}

	// 상태 코드와 상관없이 구조화된 응답이면 그것을 따른다
	var appendResp struct {
		Success *bool  `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &appendResp); err != nil || appendResp.Success == nil {
		return &TransportError{
			Endpoint: c.endpoint,
			Err:      fmt.Errorf("unexpected response (status %s)", resp.Status),
		}
	}

	if !*appendResp.Success {
		return &RemoteRejection{Message: appendResp.Error}
	}
	return nil
}
