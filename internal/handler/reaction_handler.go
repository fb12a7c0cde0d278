package handler

import (
	"errors"
	"net/http"
	"strconv"

	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/hub"
	"linkfolio/backend/internal/models"
	"linkfolio/backend/internal/reaction"
	"linkfolio/backend/internal/visibility"

	"github.com/gin-gonic/gin"
)

// React returns a handler that toggles reaction r on targets of kind k.
// One handler serves all four target families; the routes bind the kind.
//
// React godoc
// @Summary      Toggle a reaction
// @Description  Sets, switches, or clears the viewer's like/unlike on a target. Setting one reaction clears the other; repeating the active one clears it.
// @Tags         reactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target ID"
// @Success      200  {object}  reaction.Summary
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
func React(k reaction.TargetKind, r reaction.Reaction) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID := currentUserID(c)
		targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID"})
			return
		}

		ownerID, gateOwnerID, level, err := resolveTarget(k, uint(targetID))
		if errors.Is(err, errTargetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Target not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load target"})
			return
		}

		viewer := viewerContext(viewerID, gateOwnerID)
		cfg := loadConfiguration(gateOwnerID)
		if !visibility.CanView(visibility.Level(level), viewer) ||
			!visibility.CanView(visibility.Level(cfg.Reactions), viewer) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to react to this"})
			return
		}

		summary, err := reaction.Toggle(database.DB, k, viewerID, uint(targetID), r)
		if err != nil {
			// The toggle transaction rolled back; nothing changed.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No change applied"})
			return
		}

		if ownerID != viewerID && summary.UserReaction != nil {
			hub.GlobalHub.Notify(ownerID, hub.Event{
				Type: "reaction",
				Payload: gin.H{
					"kind":         k,
					"target_id":    targetID,
					"from_user_id": viewerID,
					"reaction":     *summary.UserReaction,
				},
			})
		}

		c.JSON(http.StatusOK, summary)
	}
}

var errTargetNotFound = errors.New("target not found")

// resolveTarget finds the reaction target's author (for notifications), the
// user whose relationship gates viewing (the parent post's owner for comments
// and replies), and the governing visibility level.
func resolveTarget(k reaction.TargetKind, targetID uint) (ownerID, gateOwnerID uint, level int, err error) {
	switch k {
	case reaction.TargetPost:
		var post models.Post
		if e := database.DB.First(&post, targetID).Error; e != nil {
			return 0, 0, 0, errTargetNotFound
		}
		return post.UserID, post.UserID, post.Visibility, nil

	case reaction.TargetImage:
		var image models.Image
		if e := database.DB.First(&image, targetID).Error; e != nil {
			return 0, 0, 0, errTargetNotFound
		}
		return image.UserID, image.UserID, image.Visibility, nil

	case reaction.TargetComment:
		var comment models.Comment
		if e := database.DB.First(&comment, targetID).Error; e != nil {
			return 0, 0, 0, errTargetNotFound
		}
		var post models.Post
		if e := database.DB.First(&post, comment.PostID).Error; e != nil {
			return 0, 0, 0, errTargetNotFound
		}
		return comment.UserID, post.UserID, post.Visibility, nil

	case reaction.TargetReply:
		var reply models.Reply
		if e := database.DB.First(&reply, targetID).Error; e != nil {
			return 0, 0, 0, errTargetNotFound
		}
		var comment models.Comment
		if e := database.DB.First(&comment, reply.CommentID).Error; e != nil {
			return 0, 0, 0, errTargetNotFound
		}
		var post models.Post
		if e := database.DB.First(&post, comment.PostID).Error; e != nil {
			return 0, 0, 0, errTargetNotFound
		}
		return reply.UserID, post.UserID, post.Visibility, nil
	}
	return 0, 0, 0, errTargetNotFound
}
