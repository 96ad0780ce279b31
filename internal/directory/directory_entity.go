package directory

import "github.com/google/uuid"

// User is an account in the agency directory. EmployeeID is nil for accounts
// that are not backed by an employee record.
type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AgencyID   uuid.UUID  `gorm:"column:agency_id;type:uuid"`
	EmployeeID *uuid.UUID `gorm:"column:employee_id;type:uuid"`
	Name       string     `gorm:"column:name"`
	Role       string     `gorm:"column:role"`
	IsActive   bool       `gorm:"column:is_active"`
}

func (User) TableName() string {
	return "users"
}
