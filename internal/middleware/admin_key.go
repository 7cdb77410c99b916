package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// 관리자 키 검사. 헤더(X-Admin-Key) 또는 쿼리(?key=)로 받는다. 브라우저로 여는 OAuth 시작 경로용.
func AdminKey(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin key is not configured"})
			return
		}

		key := c.GetHeader("X-Admin-Key")
		if key == "" {
			key = c.Query("key")
		}
		if key == "" || bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)) != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid admin key"})
			return
		}
		c.Next()
	}
}
