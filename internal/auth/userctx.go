package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planny/planny-backend/internal/users"
)

// WithUser trusts X-User-* headers and falls back to "demo-user".
// Use this ONLY for development/testing.
func WithUser(userRepo UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if fuid == "" {
			fuid = "demo-user"
		}
		email := c.GetHeader("X-User-Email")

		uid, err := userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
			FirebaseUID: fuid,
			Email:       email,
			DisplayName: c.GetHeader("X-User-Name"),
			PhotoURL:    c.GetHeader("X-User-Photo"),
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			return
		}

		c.Set(CtxFirebaseUID, fuid)
		c.Set(CtxEmail, email)
		c.Set(CtxUserDBID, uid)
		c.Next()
	}
}
