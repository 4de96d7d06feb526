package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "atlas3-backend/internal/common/errors"
	"atlas3-backend/internal/features/user/service"
)

// SyncUser mirrors the session user into the users table. It must run
// after RequireSession.
func SyncUser(userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetSession(c)
		if err != nil {
			appErr, _ := apperrors.AsAppError(err)
			abortWithError(c, appErr)
			return
		}

		if _, err := userService.GetOrCreateUser(c.Request.Context(), session.UserID, session.Type); err != nil {
			abortWithError(c, apperrors.NewDatabaseError("sync user", err))
			return
		}
		c.Next()
	}
}
