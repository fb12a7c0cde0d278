package auth

import (
	"fmt"
	"net/http"
	"strings"

	"linkfolio/backend/internal/config"
	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/models"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a gin middleware that requires a valid Bearer token
// bound to a live (non-revoked) session. Sets userID and sessionID on the
// context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := parseToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			return
		}

		var session models.Session
		if err := database.DB.Where("token_id = ?", sessionID).First(&session).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
			return
		}
		if session.RevokedAt != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session revoked"})
			return
		}

		c.Set("userID", userID)
		c.Set("sessionID", sessionID)
		c.Next()
	}
}

// OptionalAuthMiddleware inspects for a token and sets the userID if present and valid,
// but does not fail if the token is missing, invalid, or revoked.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, sessionID, ok := parseToken(c.GetHeader("Authorization")); ok {
			var session models.Session
			err := database.DB.Where("token_id = ?", sessionID).First(&session).Error
			if err == nil && session.RevokedAt == nil {
				c.Set("userID", userID)
				c.Set("sessionID", sessionID)
			}
		}
		c.Next()
	}
}

func parseToken(authHeader string) (userID uint, sessionID string, ok bool) {
	if authHeader == "" {
		return 0, "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, "", false
	}

	token, err := gojwt.Parse(parts[1], func(token *gojwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", false
	}

	claims, ok := token.Claims.(gojwt.MapClaims)
	if !ok {
		return 0, "", false
	}
	userIDFloat, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", false
	}
	sid, ok := claims["sid"].(string)
	if !ok {
		return 0, "", false
	}
	return uint(userIDFloat), sid, true
}
