package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader propagates the request identifier to and from clients.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the gin.Context key under which the request ID string is
	// stored so handlers and other middleware can read it without parsing
	// headers.
	RequestIDKey = "request_id"

	// maxRequestIDLength caps inbound identifiers so a hostile client cannot
	// inflate every log line and audit entry tied to the request.
	maxRequestIDLength = 128
)

// RequestIDMiddleware ensures every request carries a unique identifier. An
// X-Request-ID set by an upstream load balancer or gateway is reused unchanged
// (unless oversized); otherwise a UUID v4 is generated. The ID is stored under
// RequestIDKey and echoed in the response header so clients can correlate
// their request with server-side log entries.
//
// Register this middleware before the logger so every log line includes the ID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// RequestID returns the current request's identifier, or an empty string when
// RequestIDMiddleware has not run.
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
