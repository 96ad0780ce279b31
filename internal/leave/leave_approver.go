package leave

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// SystemAutoEmergency is stored in agency_approved_by for emergency leave
// accepted automatically at creation.
const SystemAutoEmergency = "SYSTEM_AUTO_EMERGENCY"

// ApprovedBy is either a user id or the system itself.
// It is persisted as text: the user uuid or SystemAutoEmergency.
type ApprovedBy struct {
	userID uuid.UUID
	system bool
}

func ApprovedByUser(id uuid.UUID) ApprovedBy {
	return ApprovedBy{userID: id}
}

func ApprovedBySystem() ApprovedBy {
	return ApprovedBy{system: true}
}

func (a ApprovedBy) IsSystem() bool {
	return a.system
}

func (a ApprovedBy) UserID() (uuid.UUID, bool) {
	return a.userID, !a.system
}

func (a ApprovedBy) IsUser(id string) bool {
	uid, ok := a.UserID()
	return ok && uid.String() == id
}

func (a ApprovedBy) String() string {
	if a.system {
		return SystemAutoEmergency
	}
	return a.userID.String()
}

func (a ApprovedBy) Value() (driver.Value, error) {
	return a.String(), nil
}

func (a *ApprovedBy) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("approved_by: unsupported type %T", src)
	}

	if s == SystemAutoEmergency {
		*a = ApprovedBySystem()
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("approved_by: %w", err)
	}
	*a = ApprovedByUser(id)
	return nil
}

// approvedByPtr keeps call sites short when assigning nullable columns.
func approvedByPtr(a ApprovedBy) *ApprovedBy {
	return &a
}

func isApprovedByUser(a *ApprovedBy, userID string) bool {
	return a != nil && a.IsUser(userID)
}
