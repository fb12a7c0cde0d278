package handler

import (
	"errors"
	"net/http"
	"strconv"

	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/models"
	"linkfolio/backend/internal/visibility"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FollowResponse reports the follow edge state after a toggle.
type FollowResponse struct {
	Following bool `json:"following"`
}

// ToggleFollow godoc
// @Summary      Toggle follow
// @Description  Follows the target user, or unfollows if already following.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  FollowResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /users/{id}/follow [post]
func ToggleFollow(c *gin.Context) {
	viewerID := currentUserID(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}
	if viewerID == uint(targetID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	var target models.User
	if err := database.DB.First(&target, uint(targetID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
		return
	}

	var existing models.Follow
	err = database.DB.Where("follower_id = ? AND following_id = ?", viewerID, uint(targetID)).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		edge := models.Follow{FollowerID: viewerID, FollowingID: uint(targetID)}
		if err := database.DB.Create(&edge).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow"})
			return
		}
		c.JSON(http.StatusOK, FollowResponse{Following: true})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve follow state"})
		return
	}

	if err := database.DB.Delete(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow"})
		return
	}
	c.JSON(http.StatusOK, FollowResponse{Following: false})
}

// ListFollowers godoc
// @Summary      List a user's followers
// @Description  Lists followers of a user, gated by the owner's followers-list visibility.
// @Tags         follows
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users/{id}/followers [get]
func ListFollowers(c *gin.Context) {
	listFollowEdges(c, true)
}

// ListFollowing godoc
// @Summary      List who a user follows
// @Description  Lists users followed by a user, gated by the owner's following-list visibility.
// @Tags         follows
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users/{id}/following [get]
func ListFollowing(c *gin.Context) {
	listFollowEdges(c, false)
}

func listFollowEdges(c *gin.Context, followers bool) {
	viewerID := currentUserID(c)
	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	cfg := loadConfiguration(uint(ownerID))
	viewer := viewerContext(viewerID, uint(ownerID))

	level := cfg.FollowingList
	if followers {
		level = cfg.FollowersList
	}
	if !visibility.CanView(visibility.Level(level), viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this list"})
		return
	}

	var edges []models.Follow
	query := database.DB
	if followers {
		query = query.Preload("Follower").Where("following_id = ?", uint(ownerID))
	} else {
		query = query.Preload("Following").Where("follower_id = ?", uint(ownerID))
	}
	if err := query.Find(&edges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch list"})
		return
	}

	responses := []PublicUserResponse{}
	for _, e := range edges {
		user := e.Following
		if followers {
			user = e.Follower
		}
		if user.ID == 0 {
			continue
		}
		userCfg := loadConfiguration(user.ID)
		userViewer := viewerContext(viewerID, user.ID)
		responses = append(responses, buildPublicUserResponse(user, userCfg, userViewer, viewerID))
	}
	c.JSON(http.StatusOK, responses)
}
