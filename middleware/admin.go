package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// AdminGate implements the single-password admin gate: the password is
// exchanged for a short-lived HS256 token which guards the dashboard.
type AdminGate struct {
	password  string
	jwtSecret []byte
	ttl       time.Duration
}

func NewAdminGate(password, jwtSecret string) *AdminGate {
	return &AdminGate{
		password:  password,
		jwtSecret: []byte(jwtSecret),
		ttl:       time.Hour,
	}
}

// IssueToken validates the shared password and mints a token.
func (g *AdminGate) IssueToken(password string) (string, error) {
	if g.password == "" || len(g.jwtSecret) == 0 {
		return "", fmt.Errorf("admin gate not configured")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) != 1 {
		return "", fmt.Errorf("invalid password")
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(g.ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.jwtSecret)
}

// Middleware rejects requests without a valid admin token.
func (g *AdminGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == "" || tokenStr == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return g.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}
