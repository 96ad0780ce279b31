package leave

import (
	"context"
	"database/sql"
	"time"

	"go-agency/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAllByAgency(ctx context.Context, agencyID string) ([]Leave, error)
	FindByIDAndAgency(ctx context.Context, agencyID, id string) (*Leave, error)
	// FindByIDAndAgencyForUpdate locks the leave row until the surrounding tx ends.
	FindByIDAndAgencyForUpdate(ctx context.Context, agencyID, id string) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	FindEmployeeByIDAndAgency(ctx context.Context, agencyID, employeeID string) (*Employee, error)
	HasOverlappingPeriod(ctx context.Context, agencyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn runs statements on the bound *sql.Tx when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) withApplicant(db *gorm.DB) *gorm.DB {
	return db.Preload("Employee").Preload("Employee.User")
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *repository) FindAllByAgency(ctx context.Context, agencyID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Scopes(tenant.Scope(agencyID), r.withApplicant).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByIDAndAgency(ctx context.Context, agencyID, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Scopes(tenant.Scope(agencyID), r.withApplicant).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDAndAgencyForUpdate(ctx context.Context, agencyID, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(agencyID), r.withApplicant).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit(clause.Associations).Save(l).Error
}

func (r *repository) FindEmployeeByIDAndAgency(ctx context.Context, agencyID, employeeID string) (*Employee, error) {
	var e Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(agencyID)).
		Preload("User").
		Where("deleted_at IS NULL").
		First(&e, "id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, agencyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.conn(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(agencyID)).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
