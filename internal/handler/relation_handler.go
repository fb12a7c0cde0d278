package handler

import (
	"net/http"
	"strconv"

	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/hub"
	"linkfolio/backend/internal/models"
	"linkfolio/backend/internal/relation"

	"github.com/gin-gonic/gin"
)

// RelationResponse reports the resolved state after a read or transition.
type RelationResponse struct {
	State   relation.State `json:"state"`
	Applied bool           `json:"applied"`
}

// GetRelation godoc
// @Summary      Get relationship state
// @Description  Resolves the symmetric relationship state between the viewer and another user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  RelationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/{id}/relation [get]
func GetRelation(c *gin.Context) {
	viewerID := currentUserID(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	state, err := relation.NewStore(database.DB).Current(viewerID, uint(targetID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve relation"})
		return
	}
	c.JSON(http.StatusOK, RelationResponse{State: state, Applied: false})
}

// SendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request. If the other side already requested, the pair becomes friends directly.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  RelationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /users/{id}/request [post]
func SendRequest(c *gin.Context) {
	applyRelationAction(c, relation.ActionSend, "friend_request")
}

// AcceptRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending friend request from another user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting User ID"
// @Success      200  {object}  RelationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/{id}/accept [post]
func AcceptRequest(c *gin.Context) {
	applyRelationAction(c, relation.ActionAccept, "friend_accept")
}

// RejectRequest godoc
// @Summary      Reject friend request
// @Description  Rejects a pending friend request from another user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting User ID"
// @Success      200  {object}  RelationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/{id}/reject [post]
func RejectRequest(c *gin.Context) {
	applyRelationAction(c, relation.ActionReject, "")
}

// CancelRequest godoc
// @Summary      Cancel sent request
// @Description  Cancels the viewer's own pending request, returning the pair to neutral.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  RelationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/{id}/cancel [post]
func CancelRequest(c *gin.Context) {
	applyRelationAction(c, relation.ActionCancel, "")
}

// RemoveFriend godoc
// @Summary      Dissolve friendship
// @Description  Removes an existing friendship from the viewer's side.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  RelationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/{id}/remove [post]
func RemoveFriend(c *gin.Context) {
	applyRelationAction(c, relation.ActionDelete, "")
}

// ListFriends godoc
// @Summary      List friends
// @Description  Lists the viewer's mutually accepted friends.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/friends [get]
func ListFriends(c *gin.Context) {
	viewerID := currentUserID(c)

	var edges []models.Friendship
	err := database.DB.Preload("ToUser").
		Where("from_user_id = ? AND request = 1 AND response = 1", viewerID).
		Find(&edges).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	responses := []PublicUserResponse{}
	for _, e := range edges {
		if e.ToUser.ID == 0 {
			continue
		}
		cfg := loadConfiguration(e.ToUser.ID)
		viewer := viewerContext(viewerID, e.ToUser.ID)
		responses = append(responses, buildPublicUserResponse(e.ToUser, cfg, viewer, viewerID))
	}
	c.JSON(http.StatusOK, responses)
}

// ListRequests godoc
// @Summary      List incoming friend requests
// @Description  Lists users whose requests toward the viewer are still pending.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/requests [get]
func ListRequests(c *gin.Context) {
	viewerID := currentUserID(c)

	// Pending incoming: the peer's row requests, neither side responded yet.
	var edges []models.Friendship
	err := database.DB.Preload("FromUser").
		Where("to_user_id = ? AND request = 1 AND response = 0", viewerID).
		Find(&edges).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	store := relation.NewStore(database.DB)
	responses := []PublicUserResponse{}
	for _, e := range edges {
		if e.FromUser.ID == 0 {
			continue
		}
		state, err := store.Current(viewerID, e.FromUser.ID)
		if err != nil || state != relation.StateIncoming {
			continue
		}
		cfg := loadConfiguration(e.FromUser.ID)
		viewer := viewerContext(viewerID, e.FromUser.ID)
		responses = append(responses, buildPublicUserResponse(e.FromUser, cfg, viewer, viewerID))
	}
	c.JSON(http.StatusOK, responses)
}

func applyRelationAction(c *gin.Context, action relation.Action, notifyType string) {
	viewerID := currentUserID(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}
	if viewerID == uint(targetID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change relation with yourself"})
		return
	}

	var target models.User
	if err := database.DB.First(&target, uint(targetID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
		return
	}

	state, err := relation.NewStore(database.DB).Apply(action, viewerID, uint(targetID))
	if err != nil {
		// Nothing committed; report the unchanged state.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "No change applied",
			"state": state,
		})
		return
	}

	if notifyType != "" {
		hub.GlobalHub.Notify(uint(targetID), hub.Event{
			Type:    notifyType,
			Payload: gin.H{"from_user_id": viewerID, "state": state},
		})
	}

	c.JSON(http.StatusOK, RelationResponse{State: state, Applied: true})
}
