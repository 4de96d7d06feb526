package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "atlas3-backend/internal/common/errors"
	usermodels "atlas3-backend/internal/features/user/models"
)

const sessionKey = "session"

// SessionClaims is the payload of a session token issued by the web app.
type SessionClaims struct {
	User SessionUser `json:"user"`
	jwt.RegisteredClaims
}

type SessionUser struct {
	ID   string              `json:"id"`
	Type usermodels.UserType `json:"type"`
}

// IssueSessionToken signs a HS256 session token for session.
func IssueSessionToken(secret string, session usermodels.Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		User: SessionUser{ID: session.UserID, Type: session.Type},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionToken verifies a session token and returns its session.
func ParseSessionToken(secret, token string) (usermodels.Session, error) {
	var claims SessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return usermodels.Session{}, err
	}
	if !parsed.Valid {
		return usermodels.Session{}, errors.New("invalid token")
	}
	if claims.User.ID == "" {
		return usermodels.Session{}, errors.New("token has no user id")
	}

	userType := claims.User.Type
	if userType == "" {
		userType = usermodels.UserTypeUser
	}
	return usermodels.Session{UserID: claims.User.ID, Type: userType}, nil
}

// RequireSession authenticates the request from its bearer session token.
func RequireSession(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortWithError(c, apperrors.NewUnauthorizedError("Unauthorized"))
			return
		}

		session, err := ParseSessionToken(secret, strings.TrimSpace(token))
		if err != nil {
			abortWithError(c, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "Unauthorized"))
			return
		}

		c.Set(sessionKey, session)
		c.Set("user_id", session.UserID)
		c.Next()
	}
}

// GetSession returns the session stored by RequireSession.
func GetSession(c *gin.Context) (usermodels.Session, error) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return usermodels.Session{}, apperrors.NewUnauthorizedError("Unauthorized")
	}
	session, ok := v.(usermodels.Session)
	if !ok {
		return usermodels.Session{}, apperrors.New(apperrors.ErrCodeInternal, fmt.Sprintf("unexpected session type %T", v))
	}
	return session, nil
}
