package rbac

import "go-agency/internal/role"

// RolePermissionRow grants one class an action on a resource inside an agency.
type RolePermissionRow struct {
	AgencyID string `gorm:"column:agency_id"`
	Role     string `gorm:"column:role"`
	Resource string `gorm:"column:resource"`
	Action   string `gorm:"column:action"`
}

func (RolePermissionRow) TableName() string {
	return "role_permissions"
}

const (
	classStaff = "staff"

	ResourceLeave     = "leave"
	ResourceDirectory = "directory"
	ResourcePolicy    = "policy"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionApprove = "approve"
)

// DefaultPolicy applies to agencies that have not configured role_permissions.
func DefaultPolicy() []RolePermissionRow {
	everyone := []string{classStaff, role.TokenSupervisor, role.TokenHR, role.TokenAdmin}
	approvers := []string{role.TokenSupervisor, role.TokenHR, role.TokenAdmin}

	var rows []RolePermissionRow
	for _, r := range everyone {
		rows = append(rows,
			RolePermissionRow{Role: r, Resource: ResourceLeave, Action: ActionCreate},
			RolePermissionRow{Role: r, Resource: ResourceLeave, Action: ActionRead},
			RolePermissionRow{Role: r, Resource: ResourceDirectory, Action: ActionRead},
		)
	}
	for _, r := range approvers {
		rows = append(rows, RolePermissionRow{Role: r, Resource: ResourceLeave, Action: ActionApprove})
	}
	rows = append(rows, RolePermissionRow{Role: role.TokenAdmin, Resource: ResourcePolicy, Action: ActionRead})
	return rows
}
