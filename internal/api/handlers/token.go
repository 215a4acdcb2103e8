package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/playpool/pocketball/internal/ws"
)

var ErrInvalidTableToken = errors.New("invalid table token")

// TableClaims is what a table token grants.
type TableClaims struct {
	TableID string
	Role    ws.Role
}

// IssueTableToken signs a token granting role at a table.
func IssueTableToken(secret, tableID string, role ws.Role, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"table_id": tableID,
		"role":     string(role),
		"iat":      time.Now().Unix(),
		"exp":      exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign table token: %w", err)
	}
	return signed, exp, nil
}

// ParseTableToken validates a table token and returns its claims.
func ParseTableToken(secret, token string) (TableClaims, error) {
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return TableClaims{}, ErrInvalidTableToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return TableClaims{}, ErrInvalidTableToken
	}
	tableID, _ := claims["table_id"].(string)
	role, _ := claims["role"].(string)
	if tableID == "" {
		return TableClaims{}, ErrInvalidTableToken
	}
	switch ws.Role(role) {
	case ws.RolePlayer, ws.RoleSpectator:
	default:
		return TableClaims{}, ErrInvalidTableToken
	}
	return TableClaims{TableID: tableID, Role: ws.Role(role)}, nil
}

// tableToken reads the token from the X-Table-Token header, a bearer
// Authorization header or the token query parameter, in that order.
func tableToken(c *gin.Context) string {
	if t := c.GetHeader("X-Table-Token"); t != "" {
		return t
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Query("token")
}

// TableAuth checks that the request carries a token for the :id table and
// stores the granted role as "table_role".
func TableAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tableToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := ParseTableToken(secret, token)
		if err != nil || claims.TableID != c.Param("id") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("table_role", claims.Role)
		c.Next()
	}
}

func roleFrom(c *gin.Context) ws.Role {
	if v, ok := c.Get("table_role"); ok {
		if role, ok := v.(ws.Role); ok {
			return role
		}
	}
	return ws.RoleSpectator
}
