package handler

import (
	"net/http"
	"strconv"

	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/models"
	"linkfolio/backend/internal/visibility"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type CurriculumInput struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type SectionInput struct {
	Kind  models.SectionKind `json:"kind" binding:"required,oneof=experience education skills languages projects freetext"`
	Title string             `json:"title"`
	Body  string             `json:"body"`
}

// SectionOrderInput is the full ordered list of section IDs after a drag.
type SectionOrderInput struct {
	SectionIDs []uint `json:"section_ids" binding:"required,min=1"`
}

type SectionResponse struct {
	ID       uint               `json:"id"`
	Kind     models.SectionKind `json:"kind"`
	Title    string             `json:"title"`
	Body     string             `json:"body"`
	Position int                `json:"position"`
}

type CurriculumResponse struct {
	ID       uint              `json:"id"`
	UserID   uint              `json:"user_id"`
	Title    string            `json:"title"`
	Summary  string            `json:"summary"`
	Sections []SectionResponse `json:"sections"`
}

// endregion

func newCurriculumResponse(cv models.Curriculum) CurriculumResponse {
	sections := []SectionResponse{}
	for _, s := range cv.Sections {
		sections = append(sections, SectionResponse{
			ID:       s.ID,
			Kind:     s.Kind,
			Title:    s.Title,
			Body:     s.Body,
			Position: s.Position,
		})
	}
	return CurriculumResponse{
		ID:       cv.ID,
		UserID:   cv.UserID,
		Title:    cv.Title,
		Summary:  cv.Summary,
		Sections: sections,
	}
}

func loadCurriculum(userID uint) (models.Curriculum, error) {
	var cv models.Curriculum
	err := database.DB.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("user_id = ?", userID).First(&cv).Error
	return cv, err
}

// GetCurriculum godoc
// @Summary      Get a user's CV
// @Description  Retrieves a user's curriculum with sections in display order, gated by the owner's CV visibility.
// @Tags         curriculum
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  CurriculumResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/curriculum [get]
func GetCurriculum(c *gin.Context) {
	viewerID := currentUserID(c)
	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	cfg := loadConfiguration(uint(ownerID))
	viewer := viewerContext(viewerID, uint(ownerID))
	if !visibility.CanView(visibility.Level(cfg.Curriculum), viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this CV"})
		return
	}

	cv, err := loadCurriculum(uint(ownerID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Curriculum not found"})
		return
	}
	c.JSON(http.StatusOK, newCurriculumResponse(cv))
}

// UpdateCurriculum godoc
// @Summary      Update CV header
// @Description  Updates the title and summary of the viewer's own CV.
// @Tags         curriculum
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CurriculumInput true "Header fields"
// @Success      200  {object}  CurriculumResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /curriculum [put]
func UpdateCurriculum(c *gin.Context) {
	viewerID := currentUserID(c)

	var input CurriculumInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cv, err := loadCurriculum(viewerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Curriculum not found"})
		return
	}

	updates := map[string]interface{}{"title": input.Title, "summary": input.Summary}
	if err := database.DB.Model(&cv).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update curriculum"})
		return
	}

	cv, _ = loadCurriculum(viewerID)
	c.JSON(http.StatusOK, newCurriculumResponse(cv))
}

// CreateSection godoc
// @Summary      Add a CV section
// @Description  Appends a section to the end of the viewer's CV.
// @Tags         curriculum
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SectionInput true "Section content"
// @Success      201  {object}  SectionResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /curriculum/sections [post]
func CreateSection(c *gin.Context) {
	viewerID := currentUserID(c)

	var input SectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cv, err := loadCurriculum(viewerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Curriculum not found"})
		return
	}

	section := models.CurriculumSection{
		CurriculumID: cv.ID,
		Kind:         input.Kind,
		Title:        input.Title,
		Body:         input.Body,
		Position:     len(cv.Sections),
	}
	if err := database.DB.Create(&section).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create section"})
		return
	}

	c.JSON(http.StatusCreated, SectionResponse{
		ID:       section.ID,
		Kind:     section.Kind,
		Title:    section.Title,
		Body:     section.Body,
		Position: section.Position,
	})
}

// UpdateSection godoc
// @Summary      Edit a CV section
// @Description  Updates the content of one section of the viewer's CV.
// @Tags         curriculum
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Section ID"
// @Param        input body      SectionInput true  "Section content"
// @Success      200  {object}  SectionResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /curriculum/sections/{id} [put]
func UpdateSection(c *gin.Context) {
	viewerID := currentUserID(c)
	section, ok := ownSection(c, viewerID)
	if !ok {
		return
	}

	var input SectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{"kind": input.Kind, "title": input.Title, "body": input.Body}
	if err := database.DB.Model(&section).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update section"})
		return
	}

	c.JSON(http.StatusOK, SectionResponse{
		ID:       section.ID,
		Kind:     input.Kind,
		Title:    input.Title,
		Body:     input.Body,
		Position: section.Position,
	})
}

// DeleteSection godoc
// @Summary      Delete a CV section
// @Description  Removes a section and closes the position gap.
// @Tags         curriculum
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Section ID"
// @Success      200  {object}  map[string]string "{"message": "Section deleted"}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /curriculum/sections/{id} [delete]
func DeleteSection(c *gin.Context) {
	viewerID := currentUserID(c)
	section, ok := ownSection(c, viewerID)
	if !ok {
		return
	}

	tx := database.DB.Begin()
	if err := tx.Delete(&section).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete section"})
		return
	}
	err := tx.Model(&models.CurriculumSection{}).
		Where("curriculum_id = ? AND position > ?", section.CurriculumID, section.Position).
		Update("position", gorm.Expr("position - 1")).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder sections"})
		return
	}
	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Section deleted"})
}

// ReorderSections godoc
// @Summary      Reorder CV sections
// @Description  Rewrites section positions to match the dragged order. All positions change in one transaction.
// @Tags         curriculum
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SectionOrderInput true "Ordered section IDs"
// @Success      200  {object}  CurriculumResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /curriculum/sections/order [put]
func ReorderSections(c *gin.Context) {
	viewerID := currentUserID(c)

	var input SectionOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cv, err := loadCurriculum(viewerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Curriculum not found"})
		return
	}

	// The dragged order must name exactly the CV's sections, no more, no less.
	if len(input.SectionIDs) != len(cv.Sections) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order must include every section exactly once"})
		return
	}
	owned := make(map[uint]bool, len(cv.Sections))
	for _, s := range cv.Sections {
		owned[s.ID] = true
	}
	seen := make(map[uint]bool, len(input.SectionIDs))
	for _, id := range input.SectionIDs {
		if !owned[id] || seen[id] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order must include every section exactly once"})
			return
		}
		seen[id] = true
	}

	tx := database.DB.Begin()
	for position, id := range input.SectionIDs {
		err := tx.Model(&models.CurriculumSection{}).
			Where("id = ?", id).
			Update("position", position).Error
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder sections"})
			return
		}
	}
	tx.Commit()

	cv, _ = loadCurriculum(viewerID)
	c.JSON(http.StatusOK, newCurriculumResponse(cv))
}

// ownSection loads a section by path ID and verifies it belongs to the
// viewer's CV.
func ownSection(c *gin.Context, viewerID uint) (models.CurriculumSection, bool) {
	sectionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid section ID"})
		return models.CurriculumSection{}, false
	}

	var section models.CurriculumSection
	if err := database.DB.First(&section, uint(sectionID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return models.CurriculumSection{}, false
	}

	var cv models.Curriculum
	if err := database.DB.First(&cv, section.CurriculumID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Curriculum not found"})
		return models.CurriculumSection{}, false
	}
	if cv.UserID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your CV"})
		return models.CurriculumSection{}, false
	}
	return section, true
}
