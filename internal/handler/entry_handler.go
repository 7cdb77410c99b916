/**
* Name: 			entry_handler.go
* Description: 		디바이스 로컬 API 핸들러
* Workflow: 		작업자 설정, 입력 CRUD, 당일 목록, 전송(Send), CSV 내보내기
 */
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"RieperLogistics_ScanLedger/internal/config"
	"RieperLogistics_ScanLedger/internal/csvexport"
	"RieperLogistics_ScanLedger/internal/ledger"
	"RieperLogistics_ScanLedger/internal/models"
	"RieperLogistics_ScanLedger/internal/storage"
	"RieperLogistics_ScanLedger/internal/uploader"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Ledger interface {
	Session() config.Session
	SetWorker(ctx context.Context, worker string) (config.Session, error)
	AddEntry(ctx context.Context, in models.EntryInput) (models.Record, []models.Record, error)
	UpdateEntry(ctx context.Context, id int64, in models.EntryInput) (models.Record, []models.Record, error)
	DeleteEntry(ctx context.Context, id int64) ([]models.Record, error)
	Today(ctx context.Context) ([]models.Record, error)
	Export(ctx context.Context) (models.AppendRequest, []models.Record, error)
	Send(ctx context.Context) (ledger.SendResult, error)
	Subscribe(fn func([]models.Record)) (unsubscribe func())
}

type EntryHandler struct {
	svc    Ledger
	logger logrus.FieldLogger
}

func NewEntryHandler(svc Ledger, logger logrus.FieldLogger) *EntryHandler {
	return &EntryHandler{svc: svc, logger: logger}
}

// GetWorker godoc
// @Summary      현재 세션 조회
// @Tags         Device
// @Produce      json
// @Success      200 {object} config.Session
// @Router       /api/worker [get]
func (h *EntryHandler) GetWorker(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Session())
}

// SetWorker godoc
// @Summary      작업자 번호 설정
// @Tags         Device
// @Accept       json
// @Produce      json
// @Param        request body handler.WorkerRequest true "작업자 번호"
// @Success      200 {object} config.Session
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/worker [put]
func (h *EntryHandler) SetWorker(c *gin.Context) {
	var req WorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	session, err := h.svc.SetWorker(c.Request.Context(), req.Mitarbeiter)
	if err != nil {
		h.writeLedgerError(c, "SetWorker", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListEntries godoc
// @Summary      당일 목록
// @Description  오늘 날짜와 현재 작업자의 입력만 반환한다.
// @Tags         Device
// @Produce      json
// @Success      200 {object} handler.EntriesResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/entries [get]
func (h *EntryHandler) ListEntries(c *gin.Context) {
	view, err := h.svc.Today(c.Request.Context())
	if err != nil {
		h.writeLedgerError(c, "ListEntries", err)
		return
	}
	c.JSON(http.StatusOK, EntriesResponse{Entries: nonNil(view)})
}

// CreateEntry godoc
// @Summary      입력 저장
// @Description  숫자 필드는 정수로 정리되어 저장된다 (숫자가 아니면 0).
// @Tags         Device
// @Accept       json
// @Produce      json
// @Param        request body models.EntryInput true "입력값"
// @Success      201 {object} handler.EntryResponse
// @Failure      400 {object} handler.ErrorResponse "작업자 미설정"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/entries [post]
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var in models.EntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	record, view, err := h.svc.AddEntry(c.Request.Context(), in)
	if err != nil {
		h.writeLedgerError(c, "CreateEntry", err)
		return
	}
	c.JSON(http.StatusCreated, EntryResponse{Entry: record, Entries: nonNil(view)})
}

// UpdateEntry godoc
// @Summary      입력 수정
// @Description  date, timestamp는 유지되고 나머지 필드만 바뀐다.
// @Tags         Device
// @Accept       json
// @Produce      json
// @Param        id      path int              true "레코드 ID"
// @Param        request body models.EntryInput true "수정값"
// @Success      200 {object} handler.EntryResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/entries/{id} [put]
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in models.EntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	record, view, err := h.svc.UpdateEntry(c.Request.Context(), id, in)
	if err != nil {
		h.writeLedgerError(c, "UpdateEntry", err)
		return
	}
	c.JSON(http.StatusOK, EntryResponse{Entry: record, Entries: nonNil(view)})
}

// DeleteEntry godoc
// @Summary      입력 삭제
// @Tags         Device
// @Produce      json
// @Param        id path int true "레코드 ID"
// @Description  없는 ID는 에러가 아니다.
// @Success      200 {object} handler.EntriesResponse
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/entries/{id} [delete]
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.svc.DeleteEntry(c.Request.Context(), id)
	if err != nil {
		h.writeLedgerError(c, "DeleteEntry", err)
		return
	}
	c.JSON(http.StatusOK, EntriesResponse{Entries: nonNil(view)})
}

// Sync godoc
// @Summary      Append 전송
// @Description  현재 작업자의 미전송 입력을 Append endpoint로 보낸다. 성공 시 로컬 저장소를 비운다.
// @Tags         Device
// @Produce      json
// @Success      200 {object} ledger.SendResult
// @Failure      400 {object} handler.ErrorResponse "작업자 미설정 또는 보낼 데이터 없음"
// @Failure      409 {object} handler.ErrorResponse "이미 전송 중"
// @Failure      502 {object} handler.ErrorResponse "전송 실패 또는 원격 거부"
// @Router       /api/sync [post]
func (h *EntryHandler) Sync(c *gin.Context) {
	result, err := h.svc.Send(c.Request.Context())
	if err != nil {
		h.writeLedgerError(c, "Sync", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportCSV godoc
// @Summary      CSV 내보내기
// @Description  전송될 배치와 같은 CSV를 파일로 내려받는다. 로컬 저장소는 바뀌지 않는다.
// @Tags         Device
// @Produce      text/csv
// @Success      200 {string} string "CSV"
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/export.csv [get]
func (h *EntryHandler) ExportCSV(c *gin.Context) {
	payload, _, err := h.svc.Export(c.Request.Context())
	if err != nil {
		h.writeLedgerError(c, "ExportCSV", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+payload.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(payload.CSVData))
}

// ExportXLSX godoc
// @Summary      XLSX 내보내기
// @Tags         Device
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} file
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/export.xlsx [get]
func (h *EntryHandler) ExportXLSX(c *gin.Context) {
	payload, records, err := h.svc.Export(c.Request.Context())
	if err != nil {
		h.writeLedgerError(c, "ExportXLSX", err)
		return
	}
	name := strings.TrimSuffix(payload.Filename, ".csv") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := csvexport.WriteXLSX(c.Writer, records); err != nil {
		h.logger.WithError(err).Error("ExportXLSX(): failed to write workbook")
	}
}

// ledger 계층 에러를 HTTP 상태 코드로 변환
func (h *EntryHandler) writeLedgerError(c *gin.Context, funcName string, err error) {
	var (
		cfgErr    *ledger.ConfigError
		storeErr  *storage.StorageError
		transErr  *uploader.TransportError
		rejectErr *uploader.RemoteRejection
	)

	status := http.StatusInternalServerError
	message := err.Error()
	switch {
	case errors.As(err, &cfgErr):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrEmptyBatch):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrSyncInProgress):
		status = http.StatusConflict
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &rejectErr):
		status = http.StatusBadGateway
		message = rejectErr.Message
	case errors.As(err, &transErr):
		status = http.StatusBadGateway
	case errors.As(err, &storeErr):
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError || status == http.StatusBadGateway {
		config.LogError(h.logger, "handler", funcName, nil, err)
	}
	c.JSON(status, ErrorResponse{Error: message})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func nonNil(view []models.Record) []models.Record {
	if view == nil {
		return []models.Record{}
	}
	return view
}
