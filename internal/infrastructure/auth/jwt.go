package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"talenthub/internal/shared/biztime"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Claims carries the authenticated identity the API surface needs: the
// numeric user ID owning subscriptions and the role gating admin routes.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
	}
}

func (s *JWTService) Generate(userID uint, role string) (string, error) {
	now := biztime.NowUTC()

	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
