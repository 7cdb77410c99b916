/**
* Name: 			append_handler.go
* Description: 		Append 백엔드 HTTP 핸들러
* Workflow: 		상태 확인, CSV append 업로드
 */
package handler

import (
	"context"
	"errors"
	"net/http"

	"RieperLogistics_ScanLedger/internal/models"
	"RieperLogistics_ScanLedger/internal/remote"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxUploadBytes = 10 << 20

type Appender interface {
	Append(ctx context.Context, filename, csvData string) error
}

type AppendHandler struct {
	appender Appender
	provider string
	logger   logrus.FieldLogger
}

func NewAppendHandler(appender Appender, provider string, logger logrus.FieldLogger) *AppendHandler {
	return &AppendHandler{appender: appender, provider: provider, logger: logger}
}

// Status godoc
// @Summary      서버 상태 확인
// @Tags         Backend
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func (h *AppendHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": h.provider})
}

// UploadAppend godoc
// @Summary      CSV 이어 붙이기 (Append)
// @Description  같은 파일명으로 저장된 CSV가 있으면 그 뒤에 붙이고, 없으면 새로 만든다.
// @Description  응답 바디는 항상 {success, error?} 형태다.
// @Tags         Backend
// @Accept       json
// @Produce      json
// @Param        request body models.AppendRequest true "파일명과 CSV 내용"
// @Success      200 {object} models.AppendResponse
// @Failure      400 {object} models.AppendResponse "파일명/데이터 누락 또는 잘못된 파일명"
// @Failure      429 {object} models.AppendResponse "요청 과다"
// @Failure      502 {object} models.AppendResponse "원격 저장소 오류"
// @Router       /upload-append [post]
func (h *AppendHandler) UploadAppend(c *gin.Context) {
	var req models.AppendRequest

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.AppendResponse{Success: false, Error: "Invalid request"})
		return
	}

	log := h.logger.WithFields(logrus.Fields{"filename": req.Filename, "client": c.ClientIP()})
	log.Info("UploadAppend(): append requested")

	if err := h.appender.Append(c.Request.Context(), req.Filename, req.CSVData); err != nil {
		switch {
		case errors.Is(err, remote.ErrEmptyPayload):
			c.JSON(http.StatusBadRequest, models.AppendResponse{Success: false, Error: "Missing filename or data"})
		case errors.Is(err, remote.ErrInvalidFilename):
			c.JSON(http.StatusBadRequest, models.AppendResponse{Success: false, Error: err.Error()})
		default:
			log.WithError(err).Error("UploadAppend(): append failed")
			c.JSON(http.StatusBadGateway, models.AppendResponse{Success: false, Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, models.AppendResponse{Success: true})
}
