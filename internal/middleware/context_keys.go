package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	// callerIDKey stores the authenticated caller identity.
	callerIDKey = contextKey("callerID")
	// authMethodKey records which middleware authenticated the request.
	authMethodKey = contextKey("authMethod")
)

// GetCallerIDFromContext retrieves the authenticated caller from the Gin context.
// It returns the caller ID and a boolean indicating if it was found.
func GetCallerIDFromContext(c *gin.Context) (string, bool) {
	callerVal, exists := c.Get(string(callerIDKey))
	if !exists {
		return CallerIDFromCtx(c.Request.Context())
	}
	callerID, ok := callerVal.(string)
	return callerID, ok
}

// CallerIDFromCtx retrieves the authenticated caller from a standard context.
func CallerIDFromCtx(ctx context.Context) (string, bool) {
	callerID, ok := ctx.Value(callerIDKey).(string)
	return callerID, ok && callerID != ""
}

// setCaller records the caller in both the Gin and the request context and
// enriches the request logger with it.
func setCaller(c *gin.Context, callerID string, method string) {
	logger := GetLoggerFromCtx(c.Request.Context()).With("caller_id", callerID)
	ctx := context.WithValue(c.Request.Context(), callerIDKey, callerID)
	c.Request = c.Request.WithContext(WithLogger(ctx, logger))
	c.Set(string(callerIDKey), callerID)
	c.Set(string(authMethodKey), method)
	c.Set(string(loggerKey), logger)
}
