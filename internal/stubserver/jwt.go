package stubserver

import (
	"fmt"
	"time"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims carry the account identity inside the session cookie.
type sessionClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
}

func newTokenService(secret string, ttl time.Duration) *tokenService {
	return &tokenService{secret: []byte(secret), ttl: ttl}
}

func (s *tokenService) sign(accountID string, role models.Role) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// verify parses the token and checks that it belongs to the expected role.
// A user token never opens an admin session, and vice versa.
func (s *tokenService) verify(tokenString string, role models.Role) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Role != role {
		return "", fmt.Errorf("token role mismatch")
	}
	return claims.Subject, nil
}

// cookieName returns the session cookie for a role. The two identity
// contexts use disjoint cookies so one client can hold both sessions.
func cookieName(role models.Role) string {
	if role == models.RoleAdmin {
		return "admin_token"
	}
	return "user_token"
}
