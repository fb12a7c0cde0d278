package handler

import (
	"net/http"
	"strconv"

	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/models"
	"linkfolio/backend/internal/relation"
	"linkfolio/backend/internal/visibility"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Nickname string `json:"nickname" binding:"required" example:"testuser"`
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UpdateUserInput defines the editable profile fields. Bio is a pointer so
// that an omitted field is distinguishable from an explicit empty string.
type UpdateUserInput struct {
	Nickname  string  `json:"nickname"`
	Bio       *string `json:"bio"`
	AvatarKey string  `json:"avatar_key"`
}

// PublicUserResponse defines the structure for a user's public profile.
// Fields gated by the owner's configuration are omitted when hidden.
type PublicUserResponse struct {
	ID             uint           `json:"id" example:"1"`
	Nickname       string         `json:"nickname" example:"testuser"`
	Bio            string         `json:"bio,omitempty"`
	Email          string         `json:"email,omitempty"`
	AvatarKey      string         `json:"avatar_key,omitempty"`
	FriendsCount   *int64         `json:"friends_count,omitempty"`
	FollowersCount *int64         `json:"followers_count,omitempty"`
	FollowingCount *int64         `json:"following_count,omitempty"`
	RelationState  relation.State `json:"relation_state"`
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID             uint   `json:"id" example:"1"`
	Nickname       string `json:"nickname" example:"testuser"`
	Email          string `json:"email" example:"test@example.com"`
	Bio            string `json:"bio"`
	AvatarKey      string `json:"avatar_key"`
	FriendsCount   int64  `json:"friends_count"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user with a default configuration and an empty CV, and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("nickname = ? OR email = ?", input.Nickname, input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Nickname or email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Nickname:     input.Nickname,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}

	// User, default configuration and empty CV are created together.
	tx := database.DB.Begin()

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	cfg := defaultConfiguration(user.ID)
	if err := tx.Create(&cfg).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create configuration"})
		return
	}

	cv := models.Curriculum{UserID: user.ID}
	if err := tx.Create(&cv).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create curriculum"})
		return
	}

	tx.Commit()

	token, err := createSession(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with nickname/email and password, records the device session, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("nickname = ? OR email = ?", input.Login, input.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := createSession(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// endregion

// region --- User Handlers ---

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches for users by nickname with pagination. Users who disabled search visibility for the viewer are skipped.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query for nickname"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[PublicUserResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /users [get]
func SearchUsers(c *gin.Context) {
	viewerID := currentUserID(c)
	searchQuery := c.Query("q")
	page, limit := pageParams(c)

	query := database.DB.Model(&models.User{})
	if searchQuery != "" {
		query = query.Where("nickname ILIKE ?", "%"+searchQuery+"%")
	}

	result, err := Paginate[models.User](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	responses := []PublicUserResponse{}
	for _, user := range result.Data {
		if user.ID == viewerID {
			continue
		}
		cfg := loadConfiguration(user.ID)
		viewer := viewerContext(viewerID, user.ID)
		if !visibility.CanView(visibility.Level(cfg.Search), viewer) {
			continue
		}
		responses = append(responses, buildPublicUserResponse(user, cfg, viewer, viewerID))
	}

	c.JSON(http.StatusOK, PaginatedResponse[PublicUserResponse]{Data: responses, Meta: result.Meta})
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the public profile for a specific user, with fields filtered by the owner's visibility configuration.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func GetUserByID(c *gin.Context) {
	viewerID := currentUserID(c)
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if viewerID != 0 && viewerID == uint(targetUserID) {
		GetMe(c)
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	cfg := loadConfiguration(targetUser.ID)
	viewer := viewerContext(viewerID, targetUser.ID)
	c.JSON(http.StatusOK, buildPublicUserResponse(targetUser, cfg, viewer, viewerID))
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	viewerID := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, viewerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, buildPrivateUserResponse(user))
}

// UpdateMe godoc
// @Summary      Update current user's profile
// @Description  Updates nickname, bio, or avatar for the authenticated user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateUserInput true "Profile fields"
// @Success      200  {object}  PrivateUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Nickname taken"
// @Router       /users/me [put]
func UpdateMe(c *gin.Context) {
	viewerID := currentUserID(c)

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, viewerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := profileUpdates(user, input)
	if nickname, ok := updates["nickname"]; ok {
		var taken models.User
		if err := database.DB.Where("nickname = ?", nickname).First(&taken).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Nickname already exists"})
			return
		}
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		database.DB.First(&user, viewerID)
	}

	c.JSON(http.StatusOK, buildPrivateUserResponse(user))
}

// endregion

// region --- Helpers ---

func offsetFor(page, limit int) int {
	return (page - 1) * limit
}

// profileUpdates builds the column map for a profile edit. A nil Bio means
// the field was omitted and the stored value is kept.
func profileUpdates(user models.User, input UpdateUserInput) map[string]interface{} {
	updates := map[string]interface{}{}
	if input.Nickname != "" && input.Nickname != user.Nickname {
		updates["nickname"] = input.Nickname
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.AvatarKey != "" {
		updates["avatar_key"] = input.AvatarKey
	}
	return updates
}

func relationCounts(userID uint) (friends, followers, following int64) {
	// A friendship shows all four flags set; counting one direction of the
	// pair counts each friend once.
	database.DB.Model(&models.Friendship{}).
		Where("from_user_id = ? AND request = 1 AND response = 1", userID).
		Count(&friends)
	database.DB.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&followers)
	database.DB.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&following)
	return friends, followers, following
}

func buildPublicUserResponse(targetUser models.User, cfg models.Configuration, viewer visibility.Viewer, viewerID uint) PublicUserResponse {
	resp := PublicUserResponse{
		ID:       targetUser.ID,
		Nickname: targetUser.Nickname,
	}

	if visibility.CanView(visibility.Level(cfg.Bio), viewer) {
		resp.Bio = targetUser.Bio
	}
	if visibility.CanView(visibility.Level(cfg.Email), viewer) {
		resp.Email = targetUser.Email
	}
	if visibility.CanView(visibility.Level(cfg.ProfileImage), viewer) {
		resp.AvatarKey = targetUser.AvatarKey
	}

	friends, followers, following := relationCounts(targetUser.ID)
	if visibility.CanView(visibility.Level(cfg.FriendsList), viewer) {
		resp.FriendsCount = &friends
	}
	if visibility.CanView(visibility.Level(cfg.FollowersList), viewer) {
		resp.FollowersCount = &followers
	}
	if visibility.CanView(visibility.Level(cfg.FollowingList), viewer) {
		resp.FollowingCount = &following
	}

	if viewerID != 0 {
		state, err := relation.NewStore(database.DB).Current(viewerID, targetUser.ID)
		if err == nil {
			resp.RelationState = state
		}
	}

	return resp
}

func buildPrivateUserResponse(user models.User) PrivateUserResponse {
	friends, followers, following := relationCounts(user.ID)

	return PrivateUserResponse{
		ID:             user.ID,
		Nickname:       user.Nickname,
		Email:          user.Email,
		Bio:            user.Bio,
		AvatarKey:      user.AvatarKey,
		FriendsCount:   friends,
		FollowersCount: followers,
		FollowingCount: following,
	}
}

// endregion
