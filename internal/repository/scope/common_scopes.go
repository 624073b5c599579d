package scope

import "gorm.io/gorm"

// OrderByCreatedAsc keeps insertion order; id breaks ties between rows
// created in the same instant.
func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
