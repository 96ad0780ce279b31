package leave

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var testNow = time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

func applicantWithRole(roleName string) *Employee {
	id := uuid.New()
	return &Employee{
		ID:       id,
		FullName: "Applicant " + roleName,
		User:     &EmployeeUser{ID: uuid.New(), EmployeeID: id, Role: roleName, IsActive: true},
	}
}

func newTestLeave(leaveType Type, status Status, roleName string) Leave {
	emp := applicantWithRole(roleName)
	l := Leave{
		ID:         uuid.New(),
		AgencyID:   uuid.New(),
		EmployeeID: emp.ID,
		LeaveType:  leaveType,
		StartDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		TotalDays:  5,
		Status:     status,
		Employee:   emp,
	}
	if leaveType == TypeEmergency && status == StatusAgencyApproved {
		l.AgencyApprovedAt = &testNow
		l.AgencyApprovedBy = approvedByPtr(ApprovedBySystem())
	}
	return l
}

func availableAs(v bool) availabilityFunc {
	return func(ctx context.Context, roleSubstring string) (bool, error) {
		return v, nil
	}
}

func noLookup(ctx context.Context, roleSubstring string) (bool, error) {
	panic("availability must not be consulted on this branch")
}
