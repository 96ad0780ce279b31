package tenant

import "gorm.io/gorm"

// Scope restricts a query to one agency. Every tenant-owned table carries agency_id.
func Scope(agencyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("agency_id = ?", agencyID)
	}
}
