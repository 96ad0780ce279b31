package directory

import (
	"context"
	"strings"
	"time"

	"go-agency/internal/leave"
	"go-agency/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=directory_repo.go -destination=mock/directory_repo_mock.go -package=mock
type Repository interface {
	// FindActiveUsersByRole matches the role name case-insensitively by substring.
	FindActiveUsersByRole(ctx context.Context, agencyID, roleSubstring string) ([]User, error)
	HasApprovedLeaveOn(ctx context.Context, agencyID, employeeID string, day time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveUsersByRole(ctx context.Context, agencyID, roleSubstring string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(agencyID)).
		Where("is_active = ?", true).
		Where("LOWER(role) LIKE ?", "%"+escapeLike(strings.ToLower(roleSubstring))+"%").
		Order("id").
		Find(&users).Error
	return users, err
}

func (r *repository) HasApprovedLeaveOn(ctx context.Context, agencyID, employeeID string, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&leave.Leave{}).
		Scopes(tenant.Scope(agencyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", leave.StatusAgencyApproved).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&count).Error
	return count > 0, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
