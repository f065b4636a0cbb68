package middleware

import (
	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/gin-gonic/gin"
)

// APIKeyHeader is the header checked by APIKeyAuth.
const APIKeyHeader = "X-API-Key"

// APIKeyCaller is the caller ID assigned to API key requests.
const APIKeyCaller = "api_key"

// APIKeyAuth authenticates requests presenting the configured API key.
// keyHash is the bcrypt hash of the key. Requests without the header, or with
// a key that does not match, continue unauthenticated so that a later
// middleware can try another method.
func APIKeyAuth(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" || keyHash == "" {
			c.Next()
			return
		}
		if !utils.CheckAPIKey(key, keyHash) {
			GetLoggerFromCtx(c.Request.Context()).Warn("API key rejected")
			c.Next()
			return
		}

		setCaller(c, APIKeyCaller, "api_key")
		c.Next()
	}
}
