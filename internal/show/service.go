package show

import (
	"sort"
	"time"

	"station-api/internal/models"

	"gorm.io/gorm"
)

// HasOverlap reports whether [start, end] collides with the window of any
// other enabled show. Three clauses: the candidate start falls inside an
// existing window, the candidate end falls inside one, or the candidate
// swallows one whole. Touching boundaries (one show ends exactly when
// another starts) is not a collision.
func HasOverlap(db *gorm.DB, start, end time.Time, excludeID uint) (bool, error) {
	q := db.Model(&models.Show{}).Where("enabled = ?", true)

	q = q.Where(
		db.Where("start_date <= ? AND end_date >= ? AND end_date != ?", start, start, start).
			Or("start_date <= ? AND end_date >= ? AND start_date != ?", end, end, end).
			Or("start_date >= ? AND end_date <= ?", start, end),
	)

	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsPrimaryModerator reports whether the user holds the primary slot on
// the given show.
func IsPrimaryModerator(db *gorm.DB, showID, userID uint) bool {
	var count int64
	db.Model(&models.ShowModerator{}).
		Where("show_id = ? AND moderator_id = ? AND \"primary\" = ?", showID, userID, true).
		Count(&count)
	return count > 0
}

// PrimaryModeratorID returns the current primary moderator's user id,
// or 0 when the show has none yet.
func PrimaryModeratorID(db *gorm.DB, showID uint) uint {
	var pivot models.ShowModerator
	err := db.Where("show_id = ? AND \"primary\" = ?", showID, true).First(&pivot).Error
	if err != nil {
		return 0
	}
	return pivot.ModeratorID
}

// NonPrimaryModeratorIDs returns the sorted ids of the show's
// non-primary moderators.
func NonPrimaryModeratorIDs(db *gorm.DB, showID uint) []uint {
	var pivots []models.ShowModerator
	db.Where("show_id = ? AND \"primary\" = ?", showID, false).Find(&pivots)

	ids := make([]uint, 0, len(pivots))
	for _, p := range pivots {
		ids = append(ids, p.ModeratorID)
	}
	sortIDs(ids)
	return ids
}

// SyncModerators replaces the show's moderator set wholesale.
func SyncModerators(tx *gorm.DB, showID uint, mods []ModeratorInput) error {
	if err := tx.Where("show_id = ?", showID).Delete(&models.ShowModerator{}).Error; err != nil {
		return err
	}

	for _, m := range mods {
		pivot := models.ShowModerator{
			ShowID:      showID,
			ModeratorID: m.ID,
			Primary:     *m.Primary,
		}
		if err := tx.Create(&pivot).Error; err != nil {
			return err
		}
	}
	return nil
}

func sortIDs(ids []uint) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func sameIDSet(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
