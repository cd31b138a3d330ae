package permissions

import (
	"station-api/internal/models"

	"gorm.io/gorm"
)

// Seed inserts any registered permission missing from the permissions
// table. Existing rows keep their ids, so role assignments survive
// restarts.
func Seed(db *gorm.DB) error {
	for _, name := range All() {
		var existing models.Permission
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			continue
		}

		perm := models.Permission{Name: name, GuardName: "web"}
		if err := db.Create(&perm).Error; err != nil {
			return err
		}
	}
	return nil
}
