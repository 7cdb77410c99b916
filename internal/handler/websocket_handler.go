package handler

import (
	"net/http"
	"time"

	"RieperLogistics_ScanLedger/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const feedWriteTimeout = 5 * time.Second

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Feed godoc
// @Summary      당일 목록 실시간 피드 (WebSocket)
// @Description  연결 직후 현재 당일 목록을 보내고, 목록이 바뀔 때마다 전체 목록을 다시 보낸다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.** `ws://` 스킴으로 연결해야 합니다.
// @Tags         WebSocket (Device)
// @Success      101 {string} string "101 Switching Protocols"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /ws/entries [get]
func (h *EntryHandler) Feed(c *gin.Context) {
	view, err := h.svc.Today(c.Request.Context())
	if err != nil {
		h.writeLedgerError(c, "Feed", err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Feed(): failed to upgrade to WebSocket")
		return
	}
	defer conn.Close()

	// 최신 목록 하나만 보관한다. 느린 클라이언트는 중간 상태를 건너뛴다.
	updates := make(chan []models.Record, 1)
	unsubscribe := h.svc.Subscribe(func(v []models.Record) {
		select {
		case <-updates:
		default:
		}
		updates <- v
	})
	defer unsubscribe()

	// 클라이언트가 끊으면 읽기 루프가 종료된다
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeView(conn, view); err != nil {
		return
	}
	for {
		select {
		case v := <-updates:
			if err := writeView(conn, v); err != nil {
				h.logger.WithError(err).Debug("Feed(): write failed, closing")
				return
			}
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeView(conn *websocket.Conn, view []models.Record) error {
	conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
	return conn.WriteJSON(EntriesResponse{Entries: nonNil(view)})
}
