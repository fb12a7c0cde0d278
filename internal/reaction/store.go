package reaction

import (
	"linkfolio/backend/internal/models"

	"gorm.io/gorm"
)

// Toggle applies reaction r by user to a target of kind k. The like and
// unlike tables of the family are mutated inside one transaction so a
// half-applied toggle is never visible to concurrent readers. On failure
// nothing commits and the error is returned.
func Toggle(db *gorm.DB, k TargetKind, userID, targetID uint, r Reaction) (Summary, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return Summary{}, tx.Error
	}

	hasLike, err := exists(tx, k.LikeTable(), userID, targetID)
	if err != nil {
		tx.Rollback()
		return Summary{}, err
	}
	hasUnlike, err := exists(tx, k.UnlikeTable(), userID, targetID)
	if err != nil {
		tx.Rollback()
		return Summary{}, err
	}

	wantLike, wantUnlike := nextRows(hasLike, hasUnlike, r)

	if err := reconcile(tx, k.LikeTable(), userID, targetID, hasLike, wantLike); err != nil {
		tx.Rollback()
		return Summary{}, err
	}
	if err := reconcile(tx, k.UnlikeTable(), userID, targetID, hasUnlike, wantUnlike); err != nil {
		tx.Rollback()
		return Summary{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return Summary{}, err
	}

	return Summarize(db, k, targetID, &userID)
}

// Summarize recomputes counts fresh and, when a viewer is known, their own
// stance. Pass a nil viewerID for anonymous reads.
func Summarize(db *gorm.DB, k TargetKind, targetID uint, viewerID *uint) (Summary, error) {
	var likes, unlikes int64
	if err := db.Table(k.LikeTable()).Where("target_id = ?", targetID).Count(&likes).Error; err != nil {
		return Summary{}, err
	}
	if err := db.Table(k.UnlikeTable()).Where("target_id = ?", targetID).Count(&unlikes).Error; err != nil {
		return Summary{}, err
	}

	var viewerLiked, viewerUnliked bool
	if viewerID != nil {
		var err error
		if viewerLiked, err = exists(db, k.LikeTable(), *viewerID, targetID); err != nil {
			return Summary{}, err
		}
		if viewerUnliked, err = exists(db, k.UnlikeTable(), *viewerID, targetID); err != nil {
			return Summary{}, err
		}
	}

	return Aggregate(likes, unlikes, viewerLiked, viewerUnliked), nil
}

func exists(db *gorm.DB, table string, userID, targetID uint) (bool, error) {
	var n int64
	err := db.Table(table).Where("user_id = ? AND target_id = ?", userID, targetID).Count(&n).Error
	return n > 0, err
}

func reconcile(tx *gorm.DB, table string, userID, targetID uint, has, want bool) error {
	if has == want {
		return nil
	}
	if want {
		return tx.Table(table).Create(&models.ReactionRow{UserID: userID, TargetID: targetID}).Error
	}
	return tx.Table(table).Where("user_id = ? AND target_id = ?", userID, targetID).Delete(&models.ReactionRow{}).Error
}
