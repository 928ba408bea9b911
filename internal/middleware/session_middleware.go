package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionIDHeader — заголовок, которым клиент идентифицирует свой слот сессии
const SessionIDHeader = "X-Session-ID"

// SessionIDKey — ключ, под которым ID сессии сохраняется в контексте Gin
const SessionIDKey = "sessionID"

// RequireSessionID создает middleware для извлечения и валидации ID сессии
// из заголовка. ID обязан быть корректным UUID — это единственный ключ слота,
// никакой аутентификации поверх него нет.
func RequireSessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionIDHeader)
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing " + SessionIDHeader + " header"})
			c.Abort()
			return
		}
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
			c.Abort()
			return
		}
		c.Set(SessionIDKey, id)
		c.Next()
	}
}

// SessionIDFromContext возвращает ID сессии, сохраненный RequireSessionID
func SessionIDFromContext(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
