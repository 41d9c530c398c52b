package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const identityKey = "caller_identity"

// IdentityMiddleware extracts the verified caller identity supplied by the
// auth layer in front of this service. Absence of the header means an
// anonymous caller, which is allowed for most operations.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(identityKey, id)
			}
		}
		c.Next()
	}
}

func callerIdentity(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
