package middleware

import (
	"net/http"
	"time"

	"fleet-console/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	SessionCookie = "fleet_session"
	sessionKey    = "session_id"
)

// Session выдает браузеру подписанный идентификатор сессии.
// По нему хранилище уведомлений находит тосты, отложенные до следующей страницы.
func Session(secret []byte, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(SessionCookie); err == nil && raw != "" {
			if claims, err := utils.ValidateSessionToken(secret, raw); err == nil {
				c.Set(sessionKey, claims.SessionID)
				c.Next()
				return
			}
			log.WithField("request_id", GetRequestID(c)).Debug("Недействительная cookie сессии, выдаем новую")
		}

		sid := uuid.NewString()
		token, err := utils.GenerateSessionToken(secret, sid, ttl)
		if err != nil {
			log.WithError(err).Error("Ошибка при подписи cookie сессии")
		} else {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(sessionKey, sid)
		c.Next()
	}
}

// GetSessionID возвращает идентификатор сессии текущего запроса
func GetSessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
