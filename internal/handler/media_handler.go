package handler

import (
	"net/http"
	"strconv"

	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/media"
	"linkfolio/backend/internal/models"
	"linkfolio/backend/internal/visibility"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type UploadURLInput struct {
	FileName string `json:"file_name" binding:"required"`
	FileType string `json:"file_type" binding:"required"`
}

type ReadURLInput struct {
	Key string `json:"key" binding:"required"`
}

type RegisterImageInput struct {
	Key        string `json:"key" binding:"required"`
	Caption    string `json:"caption"`
	Visibility int    `json:"visibility" binding:"required,min=1,max=4"`
}

type ImageResponse struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user_id"`
	Key        string `json:"key"`
	Caption    string `json:"caption,omitempty"`
	Visibility int    `json:"visibility"`
}

// endregion

// CreateUploadURL godoc
// @Summary      Start a signed upload
// @Description  Returns a presigned PUT URL; the client uploads directly to the media host, then registers the key.
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UploadURLInput true "File name and content type"
// @Success      200  {object}  map[string]string "{"url": "...", "key": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /media/upload-url [post]
func CreateUploadURL(c *gin.Context) {
	var input UploadURLInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, key, err := media.GenerateUploadURL(input.FileName, input.FileType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "key": key})
}

// CreateReadURL godoc
// @Summary      Get a signed read URL
// @Description  Returns a presigned GET URL for an image the viewer may see.
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        input body ReadURLInput true "Object key"
// @Success      200  {object}  map[string]string "{"url": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /media/read-url [post]
func CreateReadURL(c *gin.Context) {
	viewerID := currentUserID(c)

	var input ReadURLInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref := resolveMediaKey(input.Key)
	viewer := viewerContext(viewerID, ref.ownerID)
	if !canReadKey(ref, viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this object"})
		return
	}

	url, err := media.GenerateReadURL(input.Key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate read URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// RegisterImage godoc
// @Summary      Register an uploaded image
// @Description  Records an image after a completed signed upload, with its audience level.
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RegisterImageInput true "Uploaded object key"
// @Success      201  {object}  ImageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /images [post]
func RegisterImage(c *gin.Context) {
	viewerID := currentUserID(c)

	var input RegisterImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image := models.Image{
		UserID:     viewerID,
		Key:        input.Key,
		Caption:    input.Caption,
		Visibility: input.Visibility,
	}
	if err := database.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register image"})
		return
	}

	c.JSON(http.StatusCreated, newImageResponse(image))
}

// ListImages godoc
// @Summary      List a user's images
// @Description  Lists a user's images filtered by the owner's media visibility and each image's audience.
// @Tags         media
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   ImageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users/{id}/images [get]
func ListImages(c *gin.Context) {
	viewerID := currentUserID(c)
	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	cfg := loadConfiguration(uint(ownerID))
	viewer := viewerContext(viewerID, uint(ownerID))
	if !visibility.CanView(visibility.Level(cfg.Media), viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this gallery"})
		return
	}

	var images []models.Image
	err = database.DB.Where("user_id = ?", uint(ownerID)).Order("created_at DESC").Find(&images).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch images"})
		return
	}

	responses := []ImageResponse{}
	for _, image := range images {
		if !visibility.CanView(visibility.Level(image.Visibility), viewer) {
			continue
		}
		responses = append(responses, newImageResponse(image))
	}
	c.JSON(http.StatusOK, responses)
}

// DeleteImage godoc
// @Summary      Delete an image
// @Description  Removes the viewer's own image record.
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Image ID"
// @Success      200  {object}  map[string]string "{"message": "Image deleted"}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /images/{id} [delete]
func DeleteImage(c *gin.Context) {
	viewerID := currentUserID(c)
	imageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	var image models.Image
	if err := database.DB.First(&image, uint(imageID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	if image.UserID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your image"})
		return
	}

	if err := database.DB.Delete(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

// mediaKeyRef is a resolved object key: who owns it and which audience level
// gates it.
type mediaKeyRef struct {
	ownerID uint
	level   visibility.Level
	found   bool
}

// resolveMediaKey maps an object key to its governing audience: a registered
// image uses its own level, a post attachment its post's level, an avatar the
// owner's profile-image level. Keys with no resolvable owner stay unresolved.
func resolveMediaKey(key string) mediaKeyRef {
	var image models.Image
	if err := database.DB.Where("key = ?", key).First(&image).Error; err == nil {
		return mediaKeyRef{ownerID: image.UserID, level: visibility.Level(image.Visibility), found: true}
	}

	var post models.Post
	if err := database.DB.Where("image_key = ?", key).First(&post).Error; err == nil {
		return mediaKeyRef{ownerID: post.UserID, level: visibility.Level(post.Visibility), found: true}
	}

	var user models.User
	if err := database.DB.Where("avatar_key = ?", key).First(&user).Error; err == nil {
		cfg := loadConfiguration(user.ID)
		return mediaKeyRef{ownerID: user.ID, level: visibility.Level(cfg.ProfileImage), found: true}
	}

	return mediaKeyRef{}
}

// canReadKey denies unresolved keys outright and gates resolved ones by their
// audience level.
func canReadKey(ref mediaKeyRef, viewer visibility.Viewer) bool {
	if !ref.found {
		return false
	}
	return visibility.CanView(ref.level, viewer)
}

func newImageResponse(image models.Image) ImageResponse {
	return ImageResponse{
		ID:         image.ID,
		UserID:     image.UserID,
		Key:        image.Key,
		Caption:    image.Caption,
		Visibility: image.Visibility,
	}
}
