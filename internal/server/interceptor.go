package server

import (
	"time"

	"github.com/emrgen/jobpost/internal/module"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags each request with an id, reusing the caller's when given.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestTime logs the duration and status of each request.
func RequestTime() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		reqTime := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"id":     c.GetString(requestIDHeader),
			"status": c.Writer.Status(),
		}).Infof("request time: %s %s: %v", c.Request.Method, c.Request.URL.Path, reqTime)
	}
}

// RequireAdmin lets a request through only with a valid admin bearer token.
// The token subject is stored in the request context.
func RequireAdmin(verifier *module.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := module.AccessTokenFromHeader(c.GetHeader(module.Authorization))
		if err != nil {
			respondError(c, err)
			return
		}

		claims, err := verifier.VerifyAdmin(token)
		if err != nil {
			logrus.Warnf("rejected admin request %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			respondError(c, err)
			return
		}

		c.Request = c.Request.WithContext(module.WithSubject(c.Request.Context(), claims.Subject))
		c.Next()
	}
}
