package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/stockbrief/membership/pkg/config"
	"github.com/stockbrief/membership/pkg/response"
)

var errUnauthorized = errors.New("unauthorized")

// AdminClaims is the token payload expected on admin endpoints.
type AdminClaims struct {
	OperatorID string `json:"operator_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuthMiddleware guards admin endpoints with an HS256 bearer token.
// On success the operator id is stored in gin.Context under "operatorID".
func AdminAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(strings.TrimSpace(cfg.Admin.JWTSecret))
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "admin auth is not configured"))
			return
		}

		claims, err := parseAdminToken(bearerToken(c), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "unauthorized"))
			return
		}

		c.Set("operatorID", claims.OperatorID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func parseAdminToken(accessToken string, secret []byte) (*AdminClaims, error) {
	if accessToken == "" {
		return nil, errUnauthorized
	}
	token, err := jwt.ParseWithClaims(accessToken, &AdminClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errUnauthorized
		}
		return secret, nil
	})
	if err != nil {
		return nil, errUnauthorized
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errUnauthorized
	}
	if strings.TrimSpace(claims.OperatorID) == "" {
		return nil, errUnauthorized
	}
	return claims, nil
}
