package handler

import (
	"context"
	"net/http"

	"RieperLogistics_ScanLedger/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OAuthTokens interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) error
}

type OAuthHandler struct {
	tokens OAuthTokens
	states *auth.StateSigner
	logger logrus.FieldLogger
}

func NewOAuthHandler(tokens OAuthTokens, states *auth.StateSigner, logger logrus.FieldLogger) *OAuthHandler {
	return &OAuthHandler{tokens: tokens, states: states, logger: logger}
}

// Start godoc
// @Summary      Dropbox 인증 시작
// @Description  서명된 state와 함께 Dropbox 인증 페이지로 리다이렉트한다. 관리자 키 필요.
// @Tags         OAuth
// @Param        key query string false "관리자 키 (X-Admin-Key 헤더 대신)"
// @Success      302
// @Failure      403 {object} handler.ErrorResponse
// @Router       /auth/start [get]
func (h *OAuthHandler) Start(c *gin.Context) {
	state, err := h.states.Issue()
	if err != nil {
		h.logger.WithError(err).Error("Start(): failed to issue state")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start authorization"})
		return
	}
	c.Redirect(http.StatusFound, h.tokens.AuthCodeURL(state))
}

// Callback godoc
// @Summary      Dropbox OAuth 콜백
// @Description  authorization code를 토큰으로 교환하고 refresh token을 저장한다.
// @Tags         OAuth
// @Produce      html
// @Param        code  query string true "authorization code"
// @Param        state query string true "Start에서 발급한 state"
// @Success      200 {string} string "완료 페이지"
// @Failure      400 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /auth/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code"})
		return
	}
	if err := h.states.Verify(c.Query("state")); err != nil {
		h.logger.WithError(err).Warn("Callback(): state verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state"})
		return
	}

	if err := h.tokens.Exchange(c.Request.Context(), code); err != nil {
		h.logger.WithError(err).Error("Callback(): token exchange failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token exchange failed"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(
		"<h2>Authorized</h2><p>Tokens were stored. You can close this window.</p>"))
}
