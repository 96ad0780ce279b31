package leave

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeSick      Type = "SICK"
	TypeCasual    Type = "CASUAL"
	TypeAnnual    Type = "ANNUAL"
	TypeEmergency Type = "EMERGENCY"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSick, TypeCasual, TypeAnnual, TypeEmergency:
		return true
	}
	return false
}

type Status string

const (
	StatusPending            Status = "PENDING"
	StatusSupervisorApproved Status = "SUPERVISOR_APPROVED"
	// StatusHRApproved is kept for stored data; the approval flow never produces it.
	StatusHRApproved     Status = "HR_APPROVED"
	StatusAgencyApproved Status = "AGENCY_APPROVED"
	StatusRejected       Status = "REJECTED"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AgencyID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_agency_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType Type      `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status    Status    `gorm:"type:varchar(30);not null;default:'PENDING';index:idx_leaves_agency_status"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	AppliedAt time.Time `gorm:"not null"`

	SupervisorApprovedAt *time.Time  `gorm:"column:supervisor_approved_at"`
	SupervisorApprovedBy *ApprovedBy `gorm:"column:supervisor_approved_by;type:text"`
	HRApprovedAt         *time.Time  `gorm:"column:hr_approved_at"`
	HRApprovedBy         *ApprovedBy `gorm:"column:hr_approved_by;type:text"`
	AgencyApprovedAt     *time.Time  `gorm:"column:agency_approved_at"`
	AgencyApprovedBy     *ApprovedBy `gorm:"column:agency_approved_by;type:text"`
	RejectionReason      *string     `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (l Leave) IsEmergency() bool {
	return l.LeaveType == TypeEmergency
}

// ApplicantRole is the role name of the account linked to the applicant.
// Employees without an account count as frontline staff.
func (l Leave) ApplicantRole() string {
	if l.Employee == nil || l.Employee.User == nil {
		return ""
	}
	return l.Employee.User.Role
}

func (l Leave) ApplicantUserID() string {
	if l.Employee == nil || l.Employee.User == nil {
		return ""
	}
	return l.Employee.User.ID.String()
}

// Employee is the minimal applicant view joined for routing and display.
type Employee struct {
	ID       uuid.UUID     `gorm:"type:uuid;primaryKey"`
	AgencyID uuid.UUID     `gorm:"column:agency_id;type:uuid"`
	FullName string        `gorm:"column:full_name"`
	User     *EmployeeUser `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}

type EmployeeUser struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid"`
	Name       string    `gorm:"column:name"`
	Role       string    `gorm:"column:role"`
	IsActive   bool      `gorm:"column:is_active"`
}

func (EmployeeUser) TableName() string {
	return "users"
}
