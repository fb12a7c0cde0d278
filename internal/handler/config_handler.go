package handler

import (
	"net/http"

	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// ConfigurationInput carries the full set of visibility toggles. Every field
// is required so a partial edit cannot silently reset a toggle to zero.
type ConfigurationInput struct {
	ProfileImage  int `json:"profile_image" binding:"required,min=1,max=4"`
	Wall          int `json:"wall" binding:"required,min=1,max=4"`
	Posts         int `json:"posts" binding:"required,min=1,max=4"`
	Media         int `json:"media" binding:"required,min=1,max=4"`
	FriendsList   int `json:"friends_list" binding:"required,min=1,max=4"`
	FollowersList int `json:"followers_list" binding:"required,min=1,max=4"`
	FollowingList int `json:"following_list" binding:"required,min=1,max=4"`
	Curriculum    int `json:"curriculum" binding:"required,min=1,max=4"`
	Email         int `json:"email" binding:"required,min=1,max=4"`
	Bio           int `json:"bio" binding:"required,min=1,max=4"`
	Comments      int `json:"comments" binding:"required,min=1,max=4"`
	Reactions     int `json:"reactions" binding:"required,min=1,max=4"`
	Search        int `json:"search" binding:"required,min=1,max=4"`
	OnlineStatus  int `json:"online_status" binding:"required,min=1,max=4"`
	Tagging       int `json:"tagging" binding:"required,min=1,max=4"`
}

type ConfigurationResponse struct {
	ProfileImage  int `json:"profile_image"`
	Wall          int `json:"wall"`
	Posts         int `json:"posts"`
	Media         int `json:"media"`
	FriendsList   int `json:"friends_list"`
	FollowersList int `json:"followers_list"`
	FollowingList int `json:"following_list"`
	Curriculum    int `json:"curriculum"`
	Email         int `json:"email"`
	Bio           int `json:"bio"`
	Comments      int `json:"comments"`
	Reactions     int `json:"reactions"`
	Search        int `json:"search"`
	OnlineStatus  int `json:"online_status"`
	Tagging       int `json:"tagging"`
}

func newConfigurationResponse(cfg models.Configuration) ConfigurationResponse {
	return ConfigurationResponse{
		ProfileImage:  cfg.ProfileImage,
		Wall:          cfg.Wall,
		Posts:         cfg.Posts,
		Media:         cfg.Media,
		FriendsList:   cfg.FriendsList,
		FollowersList: cfg.FollowersList,
		FollowingList: cfg.FollowingList,
		Curriculum:    cfg.Curriculum,
		Email:         cfg.Email,
		Bio:           cfg.Bio,
		Comments:      cfg.Comments,
		Reactions:     cfg.Reactions,
		Search:        cfg.Search,
		OnlineStatus:  cfg.OnlineStatus,
		Tagging:       cfg.Tagging,
	}
}

// GetConfiguration godoc
// @Summary      Get visibility configuration
// @Description  Retrieves the authenticated user's visibility toggles.
// @Tags         configuration
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ConfigurationResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /configuration [get]
func GetConfiguration(c *gin.Context) {
	viewerID := currentUserID(c)
	c.JSON(http.StatusOK, newConfigurationResponse(loadConfiguration(viewerID)))
}

// UpdateConfiguration godoc
// @Summary      Update visibility configuration
// @Description  Upserts the authenticated user's visibility toggles.
// @Tags         configuration
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ConfigurationInput true "All toggles"
// @Success      200  {object}  ConfigurationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /configuration [put]
func UpdateConfiguration(c *gin.Context) {
	viewerID := currentUserID(c)

	var input ConfigurationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := models.Configuration{
		UserID:        viewerID,
		ProfileImage:  input.ProfileImage,
		Wall:          input.Wall,
		Posts:         input.Posts,
		Media:         input.Media,
		FriendsList:   input.FriendsList,
		FollowersList: input.FollowersList,
		FollowingList: input.FollowingList,
		Curriculum:    input.Curriculum,
		Email:         input.Email,
		Bio:           input.Bio,
		Comments:      input.Comments,
		Reactions:     input.Reactions,
		Search:        input.Search,
		OnlineStatus:  input.OnlineStatus,
		Tagging:       input.Tagging,
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&cfg).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save configuration"})
		return
	}

	c.JSON(http.StatusOK, newConfigurationResponse(cfg))
}
