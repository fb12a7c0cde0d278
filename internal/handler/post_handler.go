package handler

import (
	"net/http"
	"strconv"
	"time"

	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/models"
	"linkfolio/backend/internal/reaction"
	"linkfolio/backend/internal/visibility"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type PostInput struct {
	Body       string `json:"body" binding:"required"`
	ImageKey   string `json:"image_key"`
	Visibility int    `json:"visibility" binding:"required,min=1,max=4"`
}

type PostUpdateInput struct {
	Body       string `json:"body"`
	Visibility int    `json:"visibility" binding:"omitempty,min=1,max=4"`
}

type PostResponse struct {
	ID            uint             `json:"id"`
	UserID        uint             `json:"user_id"`
	Nickname      string           `json:"nickname"`
	Body          string           `json:"body"`
	ImageKey      string           `json:"image_key,omitempty"`
	Visibility    int              `json:"visibility"`
	CreatedAt     time.Time        `json:"created_at"`
	DeletedAt     *time.Time       `json:"deleted_at,omitempty"`
	CommentsCount int64            `json:"comments_count"`
	Reactions     reaction.Summary `json:"reactions"`
}

// endregion

func newPostResponse(post models.Post, viewerID uint) PostResponse {
	var commentsCount int64
	database.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentsCount)

	var viewer *uint
	if viewerID != 0 {
		viewer = &viewerID
	}
	summary, _ := reaction.Summarize(database.DB, reaction.TargetPost, post.ID, viewer)

	resp := PostResponse{
		ID:            post.ID,
		UserID:        post.UserID,
		Nickname:      post.User.Nickname,
		Body:          post.Body,
		ImageKey:      post.ImageKey,
		Visibility:    post.Visibility,
		CreatedAt:     post.CreatedAt,
		CommentsCount: commentsCount,
		Reactions:     summary,
	}
	if post.DeletedAt.Valid {
		resp.DeletedAt = &post.DeletedAt.Time
	}
	return resp
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a new wall post with an audience level.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post content"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	viewerID := currentUserID(c)

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := models.Post{
		UserID:     viewerID,
		Body:       input.Body,
		ImageKey:   input.ImageKey,
		Visibility: input.Visibility,
		Active:     true,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.Preload("User").First(&post, post.ID)
	c.JSON(http.StatusCreated, newPostResponse(post, viewerID))
}

// GetPost godoc
// @Summary      Get a post
// @Description  Fetches a single post if the viewer's relationship to the owner permits it.
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func GetPost(c *gin.Context) {
	viewerID := currentUserID(c)
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.Preload("User").First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	viewer := viewerContext(viewerID, post.UserID)
	if !post.Active && !viewer.IsOwner {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// Both the owner's posts toggle and the post's own audience must allow.
	cfg := loadConfiguration(post.UserID)
	if !visibility.CanView(visibility.Level(cfg.Posts), viewer) ||
		!visibility.CanView(visibility.Level(post.Visibility), viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this post"})
		return
	}

	c.JSON(http.StatusOK, newPostResponse(post, viewerID))
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Edits the body or audience level of the viewer's own post.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Post ID"
// @Param        input body      PostUpdateInput true  "Fields to update"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [put]
func UpdatePost(c *gin.Context) {
	viewerID := currentUserID(c)
	post, ok := ownPost(c, viewerID, false)
	if !ok {
		return
	}

	var input PostUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Body != "" {
		updates["body"] = input.Body
	}
	if input.Visibility != 0 {
		updates["visibility"] = input.Visibility
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&post).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
			return
		}
	}

	database.DB.Preload("User").First(&post, post.ID)
	c.JSON(http.StatusOK, newPostResponse(post, viewerID))
}

// TrashPost godoc
// @Summary      Move a post to trash
// @Description  Soft-deletes the viewer's own post; it can be restored later.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  map[string]string "{"message": "Post moved to trash"}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/trash [post]
func TrashPost(c *gin.Context) {
	viewerID := currentUserID(c)
	post, ok := ownPost(c, viewerID, false)
	if !ok {
		return
	}

	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to trash post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post moved to trash"})
}

// RestorePost godoc
// @Summary      Restore a post from trash
// @Description  Clears the soft-delete timestamp on the viewer's own post.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/restore [post]
func RestorePost(c *gin.Context) {
	viewerID := currentUserID(c)
	post, ok := ownPost(c, viewerID, true)
	if !ok {
		return
	}

	if err := database.DB.Unscoped().Model(&post).Update("deleted_at", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore post"})
		return
	}

	database.DB.Preload("User").First(&post, post.ID)
	c.JSON(http.StatusOK, newPostResponse(post, viewerID))
}

// ListTrash godoc
// @Summary      List trashed posts
// @Description  Lists the viewer's soft-deleted posts.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PostResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /posts/trash [get]
func ListTrash(c *gin.Context) {
	viewerID := currentUserID(c)

	var posts []models.Post
	err := database.DB.Unscoped().Preload("User").
		Where("user_id = ? AND deleted_at IS NOT NULL", viewerID).
		Order("deleted_at DESC").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trash"})
		return
	}

	responses := []PostResponse{}
	for _, post := range posts {
		responses = append(responses, newPostResponse(post, viewerID))
	}
	c.JSON(http.StatusOK, responses)
}

// DeletePost godoc
// @Summary      Permanently delete a post
// @Description  Hard-deletes the viewer's own post. Cannot be undone.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  map[string]string "{"message": "Post deleted"}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func DeletePost(c *gin.Context) {
	viewerID := currentUserID(c)
	post, ok := ownPost(c, viewerID, true)
	if !ok {
		return
	}

	if err := database.DB.Unscoped().Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// GetWall godoc
// @Summary      Get a user's wall
// @Description  Lists a user's active posts, filtered to what the viewer's relationship permits.
// @Tags         posts
// @Produce      json
// @Param        id    path      int  true   "User ID"
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Wall hidden by owner"
// @Router       /users/{id}/posts [get]
func GetWall(c *gin.Context) {
	viewerID := currentUserID(c)
	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	page, limit := pageParams(c)

	cfg := loadConfiguration(uint(ownerID))
	viewer := viewerContext(viewerID, uint(ownerID))
	if !visibility.CanView(visibility.Level(cfg.Wall), viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this wall"})
		return
	}

	var posts []models.Post
	err = database.DB.Preload("User").
		Where("user_id = ? AND active = true", uint(ownerID)).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	// Per-post audience is evaluated after the wall-level gate; visibility
	// filtering happens before pagination so page sizes stay honest.
	visible := []PostResponse{}
	for _, post := range posts {
		if !visibility.CanView(visibility.Level(post.Visibility), viewer) {
			continue
		}
		visible = append(visible, newPostResponse(post, viewerID))
	}

	total := int64(len(visible))
	start := offsetFor(page, limit)
	if start > len(visible) {
		start = len(visible)
	}
	end := start + limit
	if end > len(visible) {
		end = len(visible)
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(visible[start:end], total, page, limit))
}

// GetFeed godoc
// @Summary      Get the viewer's feed
// @Description  Lists recent posts from friends and followed users that the viewer may see.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /feed [get]
func GetFeed(c *gin.Context) {
	viewerID := currentUserID(c)
	page, limit := pageParams(c)

	// Friends (mutually accepted edges) plus followed users.
	var friendIDs []uint
	database.DB.Model(&models.Friendship{}).
		Where("from_user_id = ? AND request = 1 AND response = 1", viewerID).
		Pluck("to_user_id", &friendIDs)

	var followingIDs []uint
	database.DB.Model(&models.Follow{}).
		Where("follower_id = ?", viewerID).
		Pluck("following_id", &followingIDs)

	authorIDs := append(friendIDs, followingIDs...)
	if len(authorIDs) == 0 {
		c.JSON(http.StatusOK, NewPaginatedResponse([]PostResponse{}, 0, page, limit))
		return
	}

	var posts []models.Post
	err := database.DB.Preload("User").
		Where("user_id IN ? AND active = true", authorIDs).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	visible := []PostResponse{}
	for _, post := range posts {
		viewer := viewerContext(viewerID, post.UserID)
		if !visibility.CanView(visibility.Level(post.Visibility), viewer) {
			continue
		}
		visible = append(visible, newPostResponse(post, viewerID))
	}

	total := int64(len(visible))
	start := offsetFor(page, limit)
	if start > len(visible) {
		start = len(visible)
	}
	end := start + limit
	if end > len(visible) {
		end = len(visible)
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(visible[start:end], total, page, limit))
}

// ownPost loads a post by path ID and verifies ownership. With trashed set,
// soft-deleted posts are included.
func ownPost(c *gin.Context, viewerID uint, trashed bool) (models.Post, bool) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return models.Post{}, false
	}

	query := database.DB
	if trashed {
		query = query.Unscoped()
	}

	var post models.Post
	if err := query.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return models.Post{}, false
	}
	if post.UserID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your post"})
		return models.Post{}, false
	}
	return post, true
}
