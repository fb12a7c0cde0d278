package handler

import (
	"net/http"
	"strconv"
	"time"

	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/hub"
	"linkfolio/backend/internal/models"
	"linkfolio/backend/internal/reaction"
	"linkfolio/backend/internal/visibility"

	"github.com/gin-gonic/gin"
)

type CommentInput struct {
	Body string `json:"body" binding:"required"`
}

type CommentResponse struct {
	ID        uint             `json:"id"`
	UserID    uint             `json:"user_id"`
	Nickname  string           `json:"nickname"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Reactions reaction.Summary `json:"reactions"`
}

// CreateComment godoc
// @Summary      Comment on a post
// @Description  Adds a comment to a post the viewer may see.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Post ID"
// @Param        input body      CommentInput true  "Comment body"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	viewerID := currentUserID(c)
	post, ok := viewablePost(c, viewerID)
	if !ok {
		return
	}

	cfg := loadConfiguration(post.UserID)
	viewer := viewerContext(viewerID, post.UserID)
	if !visibility.CanView(visibility.Level(cfg.Comments), viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Owner does not accept comments from you"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comment{PostID: post.ID, UserID: viewerID, Body: input.Body}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if post.UserID != viewerID {
		hub.GlobalHub.Notify(post.UserID, hub.Event{
			Type:    "comment",
			Payload: gin.H{"post_id": post.ID, "from_user_id": viewerID},
		})
	}

	database.DB.Preload("User").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, newCommentResponse(comment, viewerID))
}

// ListComments godoc
// @Summary      List comments on a post
// @Description  Lists comments for a post the viewer may see.
// @Tags         comments
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {array}   CommentResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments [get]
func ListComments(c *gin.Context) {
	viewerID := currentUserID(c)
	post, ok := viewablePost(c, viewerID)
	if !ok {
		return
	}

	var comments []models.Comment
	err := database.DB.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	responses := []CommentResponse{}
	for _, comment := range comments {
		responses = append(responses, newCommentResponse(comment, viewerID))
	}
	c.JSON(http.StatusOK, responses)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Deletes the viewer's own comment, or any comment on the viewer's own post.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  map[string]string "{"message": "Comment deleted"}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id} [delete]
func DeleteComment(c *gin.Context) {
	viewerID := currentUserID(c)
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var comment models.Comment
	if err := database.DB.First(&comment, uint(commentID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, comment.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if comment.UserID != viewerID && post.UserID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this comment"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// CreateReply godoc
// @Summary      Reply to a comment
// @Description  Adds a reply under a comment whose post the viewer may see.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Comment ID"
// @Param        input body      CommentInput true  "Reply body"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id}/replies [post]
func CreateReply(c *gin.Context) {
	viewerID := currentUserID(c)
	comment, ok := viewableComment(c, viewerID)
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := models.Reply{CommentID: comment.ID, UserID: viewerID, Body: input.Body}
	if err := database.DB.Create(&reply).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply"})
		return
	}

	if comment.UserID != viewerID {
		hub.GlobalHub.Notify(comment.UserID, hub.Event{
			Type:    "reply",
			Payload: gin.H{"comment_id": comment.ID, "from_user_id": viewerID},
		})
	}

	database.DB.Preload("User").First(&reply, reply.ID)
	c.JSON(http.StatusCreated, newReplyResponse(reply, viewerID))
}

// ListReplies godoc
// @Summary      List replies to a comment
// @Description  Lists replies under a comment whose post the viewer may see.
// @Tags         comments
// @Produce      json
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {array}   CommentResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id}/replies [get]
func ListReplies(c *gin.Context) {
	viewerID := currentUserID(c)
	comment, ok := viewableComment(c, viewerID)
	if !ok {
		return
	}

	var replies []models.Reply
	err := database.DB.Preload("User").
		Where("comment_id = ?", comment.ID).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch replies"})
		return
	}

	responses := []CommentResponse{}
	for _, reply := range replies {
		responses = append(responses, newReplyResponse(reply, viewerID))
	}
	c.JSON(http.StatusOK, responses)
}

// DeleteReply godoc
// @Summary      Delete a reply
// @Description  Deletes the viewer's own reply, or any reply under the viewer's own comment.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Reply ID"
// @Success      200  {object}  map[string]string "{"message": "Reply deleted"}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /replies/{id} [delete]
func DeleteReply(c *gin.Context) {
	viewerID := currentUserID(c)
	replyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reply ID"})
		return
	}

	var reply models.Reply
	if err := database.DB.First(&reply, uint(replyID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
		return
	}

	var comment models.Comment
	if err := database.DB.First(&comment, reply.CommentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if reply.UserID != viewerID && comment.UserID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this reply"})
		return
	}

	if err := database.DB.Delete(&reply).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reply"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted"})
}

// region --- Helpers ---

func newCommentResponse(comment models.Comment, viewerID uint) CommentResponse {
	var viewer *uint
	if viewerID != 0 {
		viewer = &viewerID
	}
	summary, _ := reaction.Summarize(database.DB, reaction.TargetComment, comment.ID, viewer)
	return CommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Nickname:  comment.User.Nickname,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		Reactions: summary,
	}
}

func newReplyResponse(reply models.Reply, viewerID uint) CommentResponse {
	var viewer *uint
	if viewerID != 0 {
		viewer = &viewerID
	}
	summary, _ := reaction.Summarize(database.DB, reaction.TargetReply, reply.ID, viewer)
	return CommentResponse{
		ID:        reply.ID,
		UserID:    reply.UserID,
		Nickname:  reply.User.Nickname,
		Body:      reply.Body,
		CreatedAt: reply.CreatedAt,
		Reactions: summary,
	}
}

// viewablePost loads the post in the path and checks the viewer may see it.
func viewablePost(c *gin.Context, viewerID uint) (models.Post, bool) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return models.Post{}, false
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return models.Post{}, false
	}

	viewer := viewerContext(viewerID, post.UserID)
	if !post.Active && !viewer.IsOwner {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return models.Post{}, false
	}
	if !visibility.CanView(visibility.Level(post.Visibility), viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this post"})
		return models.Post{}, false
	}
	return post, true
}

// viewableComment loads the comment in the path and checks its post.
func viewableComment(c *gin.Context, viewerID uint) (models.Comment, bool) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return models.Comment{}, false
	}

	var comment models.Comment
	if err := database.DB.First(&comment, uint(commentID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return models.Comment{}, false
	}

	var post models.Post
	if err := database.DB.First(&post, comment.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return models.Comment{}, false
	}

	viewer := viewerContext(viewerID, post.UserID)
	if !visibility.CanView(visibility.Level(post.Visibility), viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this post"})
		return models.Comment{}, false
	}
	return comment, true
}

// endregion
