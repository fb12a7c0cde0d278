package handler

import (
	"errors"

	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/models"
	"linkfolio/backend/internal/relation"
	"linkfolio/backend/internal/visibility"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUserID returns the authenticated user, or 0 for anonymous requests
// behind the optional middleware.
func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get("userID"); ok {
		return v.(uint)
	}
	return 0
}

// viewerContext resolves the visibility context of viewerID (0 = anonymous)
// looking at ownerID's content. Friend and follow status are looked up here
// once so the evaluator itself stays pure.
func viewerContext(viewerID, ownerID uint) visibility.Viewer {
	v := visibility.Viewer{
		IsLogged: viewerID != 0,
		IsOwner:  viewerID != 0 && viewerID == ownerID,
	}
	if !v.IsLogged || v.IsOwner {
		return v
	}

	if friends, err := relation.NewStore(database.DB).Friends(viewerID, ownerID); err == nil {
		v.IsFriend = friends
	}

	var n int64
	database.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", viewerID, ownerID).
		Count(&n)
	v.IsFollowing = n > 0

	return v
}

// loadConfiguration fetches a user's visibility configuration, falling back
// to defaults when the row is missing (registration always creates one, but
// fail closed rather than 500 if it is gone).
func loadConfiguration(userID uint) models.Configuration {
	var cfg models.Configuration
	err := database.DB.Where("user_id = ?", userID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultConfiguration(userID)
	}
	return cfg
}

func defaultConfiguration(userID uint) models.Configuration {
	return models.Configuration{
		UserID:        userID,
		ProfileImage:  1,
		Wall:          1,
		Posts:         1,
		Media:         1,
		FriendsList:   2,
		FollowersList: 2,
		FollowingList: 2,
		Curriculum:    2,
		Email:         4,
		Bio:           1,
		Comments:      2,
		Reactions:     2,
		Search:        1,
		OnlineStatus:  3,
		Tagging:       3,
	}
}
