package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adnanprojects/userdir/pkg/session"
)

// sessionContextKey is the gin context key the resolved session lives under.
const sessionContextKey = "session"

// loggingMiddleware provides request logging
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		s.logger.Info("HTTP request", map[string]interface{}{
			"method":      param.Method,
			"path":        param.Path,
			"status_code": param.StatusCode,
			"latency":     param.Latency,
			"client_ip":   param.ClientIP,
			"request_id":  param.Keys["request_id"],
		})
		return ""
	})
}

// requestIDMiddleware adds a unique request ID to each request
func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// sessionMiddleware resolves the session named by the signed cookie and
// threads it through the request context. A missing, malformed or
// tampered cookie means a fresh anonymous session, never a failure; the
// cookie is (re)issued whenever a new session is created.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := s.codec.ReadCookie(c.Request)

		sess, created := s.sessions.Resolve(token)
		if created {
			if err := s.codec.SetCookie(c.Writer, sess.ID, sess.ExpiresAt); err != nil {
				s.logger.Error("failed to issue session cookie", err, map[string]interface{}{
					"request_id": c.GetString("request_id"),
				})
			}
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// sessionFrom extracts the resolved session from the request context.
func sessionFrom(c *gin.Context) *session.Session {
	return c.MustGet(sessionContextKey).(*session.Session)
}
