package middleware

import (
	"net/http"
	"time"

	"RieperLogistics_ScanLedger/internal/models"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// 클라이언트 IP별 업로드 횟수 제한. 한 시간 동안 요청이 없으면 limiter를 버린다.
func UploadRateLimit(perMinute int) gin.HandlerFunc {
	return limit.NewRateLimiter(func(c *gin.Context) string {
		return c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute), time.Hour
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.AppendResponse{Success: false, Error: "too many requests"})
	})
}
