package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

// SessionTTL is how long an issued session stays valid.
const SessionTTL = 7 * 24 * time.Hour

// SignSession creates a signed session token for the given user ID. The
// token is opaque to the client; the only claim the application relies on
// is "sub".
func SignSession(secret string, userID uint) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "inkwell",
		"aud": "inkwell-web",
		"exp": now.Add(SessionTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSession resolves a session token to an identity. Any failure
// (malformed, wrong signature, expired) resolves to Anonymous, never to an
// error: an unreadable cookie is simply an unauthenticated request.
func ParseSession(secret, tokenString string) Identity {
	if tokenString == "" {
		return Anonymous
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Anonymous
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Anonymous
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return Anonymous
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return Anonymous
	}

	return UserIdentity{ID: uint(userID)}
}

// generateJTI creates a unique token ID so two sessions issued in the same
// second still differ.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
