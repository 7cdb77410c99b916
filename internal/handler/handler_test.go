package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"RieperLogistics_ScanLedger/internal/auth"
	"RieperLogistics_ScanLedger/internal/config"
	"RieperLogistics_ScanLedger/internal/ledger"
	"RieperLogistics_ScanLedger/internal/models"
	"RieperLogistics_ScanLedger/internal/remote"
	"RieperLogistics_ScanLedger/internal/storage"
	"RieperLogistics_ScanLedger/internal/uploader"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAppender struct {
	mu    sync.Mutex
	err   error
	calls []models.AppendRequest
}

func (f *fakeAppender) Append(ctx context.Context, filename, csvData string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, models.AppendRequest{Filename: filename, CSVData: csvData})
	return f.err
}

type fakeTokens struct {
	exchanged string
	err       error
}

func (f *fakeTokens) AuthCodeURL(state string) string {
	return "https://www.dropbox.com/oauth2/authorize?state=" + state
}

func (f *fakeTokens) Exchange(ctx context.Context, code string) error {
	f.exchanged = code
	return f.err
}

type fakeUploader struct {
	err      error
	requests []models.AppendRequest
}

func (f *fakeUploader) Append(ctx context.Context, req models.AppendRequest) error {
	f.requests = append(f.requests, req)
	return f.err
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeAppend(t *testing.T, w *httptest.ResponseRecorder) models.AppendResponse {
	t.Helper()
	var resp models.AppendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newAPI(appender Appender, tokens OAuthTokens) *gin.Engine {
	logger, _ := test.NewNullLogger()
	cfg := APIRouterConfig{
		Appender:            appender,
		Provider:            "local",
		UploadRatePerMinute: 60,
	}
	if tokens != nil {
		cfg.Tokens = tokens
		cfg.States = auth.NewStateSigner("state-secret", logger)
	}
	return NewAPIRouter(cfg, logger)
}

func TestUploadAppend_Success(t *testing.T) {
	appender := &fakeAppender{}
	router := newAPI(appender, nil)

	w := doJSON(t, router, http.MethodPost, "/upload-append", models.AppendRequest{
		Filename: "2024-01-02_DEVICE_device_abc_MA_42.csv",
		CSVData:  "\uFEFFBarcode;Spedition\n",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeAppend(t, w).Success)
	require.Len(t, appender.calls, 1)
	assert.Equal(t, "2024-01-02_DEVICE_device_abc_MA_42.csv", appender.calls[0].Filename)
}

func TestUploadAppend_Failures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"empty payload", remote.ErrEmptyPayload, http.StatusBadRequest, "Missing filename or data"},
		{"bad filename", remote.ErrInvalidFilename, http.StatusBadRequest, remote.ErrInvalidFilename.Error()},
		{"remote failure", errors.New("dropbox unavailable"), http.StatusBadGateway, "dropbox unavailable"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newAPI(&fakeAppender{err: tc.err}, nil)

			w := doJSON(t, router, http.MethodPost, "/upload-append", models.AppendRequest{Filename: "x.csv", CSVData: "a"})

			assert.Equal(t, tc.status, w.Code)
			resp := decodeAppend(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.msg, resp.Error)
		})
	}
}

func TestUploadAppend_InvalidJSON(t *testing.T) {
	router := newAPI(&fakeAppender{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/upload-append", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decodeAppend(t, w).Success)
}

func TestStatus(t *testing.T) {
	w := doJSON(t, newAPI(&fakeAppender{}, nil), http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storage":"local"`)
}

func TestOAuthRoutes_NotRegisteredWithoutTokens(t *testing.T) {
	w := doJSON(t, newAPI(&fakeAppender{}, nil), http.MethodGet, "/auth/callback?code=x", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOAuthCallback(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tokens := &fakeTokens{}
	states := auth.NewStateSigner("state-secret", logger)
	h := NewOAuthHandler(tokens, states, logger)
	router := gin.New()
	router.GET("/auth/callback", h.Callback)

	state, err := states.Issue()
	require.NoError(t, err)

	t.Run("valid state", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/auth/callback?code=abc&state="+state, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "abc", tokens.exchanged)
	})

	t.Run("forged state", func(t *testing.T) {
		tokens.exchanged = ""
		w := doJSON(t, router, http.MethodGet, "/auth/callback?code=abc&state=forged", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, tokens.exchanged)
	})

	t.Run("missing code", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/auth/callback?state="+state, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("exchange failure", func(t *testing.T) {
		tokens.err = errors.New("invalid_grant")
		defer func() { tokens.err = nil }()
		w := doJSON(t, router, http.MethodGet, "/auth/callback?code=abc&state="+state, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestOAuthStart_Redirects(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := NewOAuthHandler(&fakeTokens{}, auth.NewStateSigner("state-secret", logger), logger)
	router := gin.New()
	router.GET("/auth/start", h.Start)

	w := doJSON(t, router, http.MethodGet, "/auth/start", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "https://www.dropbox.com/oauth2/authorize?state="))
}

type deviceFixture struct {
	router   *gin.Engine
	svc      *ledger.Service
	uploader *fakeUploader
}

func newDevice(t *testing.T, worker string) *deviceFixture {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger, _ := test.NewNullLogger()
	up := &fakeUploader{}
	svc := ledger.NewService(store, store, config.Session{Mitarbeiter: worker, ClientID: "device_abc"}, up, logger)
	return &deviceFixture{router: NewDeviceRouter(svc, logger), svc: svc, uploader: up}
}

func TestDevice_EntryLifecycle(t *testing.T) {
	d := newDevice(t, "42")

	w := doJSON(t, d.router, http.MethodPost, "/api/entries", models.EntryInput{Barcode: "0012345", Hundert: "5", Fuenfzig: "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created EntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 5, created.Entry.Hundert)
	assert.Equal(t, 0, created.Entry.Fuenfzig)
	assert.Equal(t, "42", created.Entry.Mitarbeiter)
	require.Len(t, created.Entries, 1)

	id := created.Entry.ID
	w = doJSON(t, d.router, http.MethodPut, "/api/entries/"+itoa(id), models.EntryInput{Barcode: "0012345", Hundert: "7"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated EntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 7, updated.Entry.Hundert)
	assert.Equal(t, created.Entry.Timestamp, updated.Entry.Timestamp)

	w = doJSON(t, d.router, http.MethodDelete, "/api/entries/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list EntriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Entries)
	assert.NotNil(t, list.Entries)
}

func TestDevice_ErrorMapping(t *testing.T) {
	t.Run("missing worker", func(t *testing.T) {
		d := newDevice(t, "")
		w := doJSON(t, d.router, http.MethodPost, "/api/entries", models.EntryInput{Barcode: "1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		d := newDevice(t, "42")
		w := doJSON(t, d.router, http.MethodPut, "/api/entries/999", models.EntryInput{Barcode: "1"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		d := newDevice(t, "42")
		w := doJSON(t, d.router, http.MethodDelete, "/api/entries/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty batch", func(t *testing.T) {
		d := newDevice(t, "42")
		w := doJSON(t, d.router, http.MethodPost, "/api/sync", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("remote rejection is shown verbatim", func(t *testing.T) {
		d := newDevice(t, "42")
		d.uploader.err = &uploader.RemoteRejection{Message: "quota exceeded"}
		doJSON(t, d.router, http.MethodPost, "/api/entries", models.EntryInput{Barcode: "1"})

		w := doJSON(t, d.router, http.MethodPost, "/api/sync", nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.JSONEq(t, `{"error":"quota exceeded"}`, w.Body.String())
	})

	t.Run("transport failure keeps batch", func(t *testing.T) {
		d := newDevice(t, "42")
		d.uploader.err = &uploader.TransportError{Endpoint: "http://backend", Err: errors.New("connection refused")}
		doJSON(t, d.router, http.MethodPost, "/api/entries", models.EntryInput{Barcode: "1"})

		w := doJSON(t, d.router, http.MethodPost, "/api/sync", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)

		view, err := d.svc.Today(context.Background())
		require.NoError(t, err)
		assert.Len(t, view, 1)
	})
}

func TestDevice_SyncClearsOnSuccess(t *testing.T) {
	d := newDevice(t, "42")
	doJSON(t, d.router, http.MethodPost, "/api/entries", models.EntryInput{Barcode: "0012345"})

	w := doJSON(t, d.router, http.MethodPost, "/api/sync", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var result ledger.SendResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Records)
	require.Len(t, d.uploader.requests, 1)
	assert.Equal(t, result.Filename, d.uploader.requests[0].Filename)

	w = doJSON(t, d.router, http.MethodGet, "/api/entries", nil)
	assert.JSONEq(t, `{"entries":[]}`, w.Body.String())
}

func TestDevice_WorkerAndExport(t *testing.T) {
	d := newDevice(t, "")

	w := doJSON(t, d.router, http.MethodPut, "/api/worker", WorkerRequest{Mitarbeiter: "7"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, d.router, http.MethodGet, "/api/worker", nil)
	var session config.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, "7", session.Mitarbeiter)

	doJSON(t, d.router, http.MethodPost, "/api/entries", models.EntryInput{Barcode: "0012345"})
	w = doJSON(t, d.router, http.MethodGet, "/api/export.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "_MA_7.csv")
	assert.Contains(t, w.Body.String(), `="0012345"`)
	assert.Empty(t, d.uploader.requests)

	w = doJSON(t, d.router, http.MethodGet, "/api/export.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestDevice_Feed(t *testing.T) {
	d := newDevice(t, "42")
	srv := httptest.NewServer(d.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/entries", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var initial EntriesResponse
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Empty(t, initial.Entries)

	_, _, err = d.svc.AddEntry(context.Background(), models.EntryInput{Barcode: "0012345"})
	require.NoError(t, err)

	var next EntriesResponse
	require.NoError(t, conn.ReadJSON(&next))
	require.Len(t, next.Entries, 1)
	assert.Equal(t, "0012345", next.Entries[0].Barcode)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
