package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planny/planny-backend/internal/users"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUserDBID    = "user_db_id"
	CtxEmail       = "email"
)

// UserEnsurer upserts the application user for an identity.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, u users.UpsertUser) (int64, error)
}

// UserFirebaseUID extracts the Firebase UID set by the auth middleware.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserDBID returns the users.id of the caller, or 0 when unauthenticated.
func UserDBID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserDBID)
}
