package handler

import (
	"net/http"
	"strconv"
	"time"

	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/models"
	"linkfolio/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionResponse struct {
	ID         uint       `json:"id"`
	UserAgent  string     `json:"user_agent"`
	IP         string     `json:"ip"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSeenAt time.Time  `json:"last_seen_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	Current    bool       `json:"current"`
}

// createSession records the device and mints a token bound to it.
func createSession(c *gin.Context, userID uint) (string, error) {
	session := models.Session{
		UserID:     userID,
		TokenID:    uuid.NewString(),
		UserAgent:  c.Request.UserAgent(),
		IP:         c.ClientIP(),
		LastSeenAt: time.Now(),
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return "", err
	}
	return jwt.GenerateToken(userID, session.TokenID)
}

// ListSessions godoc
// @Summary      List device sessions
// @Description  Lists the authenticated user's sessions, newest first, marking the one backing this request.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   SessionResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /sessions [get]
func ListSessions(c *gin.Context) {
	viewerID := currentUserID(c)
	currentSID, _ := c.Get("sessionID")

	var sessions []models.Session
	err := database.DB.Where("user_id = ?", viewerID).Order("created_at DESC").Find(&sessions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}

	responses := []SessionResponse{}
	for _, s := range sessions {
		responses = append(responses, SessionResponse{
			ID:         s.ID,
			UserAgent:  s.UserAgent,
			IP:         s.IP,
			CreatedAt:  s.CreatedAt,
			LastSeenAt: s.LastSeenAt,
			RevokedAt:  s.RevokedAt,
			Current:    currentSID == s.TokenID,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// RevokeSession godoc
// @Summary      Revoke a device session
// @Description  Revokes one of the viewer's sessions; tokens bound to it stop working immediately.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Session ID"
// @Success      200  {object}  map[string]string "{"message": "Session revoked"}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /sessions/{id} [delete]
func RevokeSession(c *gin.Context) {
	viewerID := currentUserID(c)
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var session models.Session
	if err := database.DB.First(&session, uint(sessionID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if session.UserID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your session"})
		return
	}

	now := time.Now()
	if err := database.DB.Model(&session).Update("revoked_at", &now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session revoked"})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the session backing the current token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string "{"message": "Logged out"}"
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/logout [post]
func Logout(c *gin.Context) {
	sid, _ := c.Get("sessionID")

	now := time.Now()
	err := database.DB.Model(&models.Session{}).
		Where("token_id = ?", sid).
		Update("revoked_at", &now).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
