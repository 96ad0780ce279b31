package leave

import "context"

// AvailabilityChecker is the directory lookup the routing rules depend on.
//
//go:generate mockgen -source=leave_availability.go -destination=mock/leave_availability_mock.go -package=mock
type AvailabilityChecker interface {
	IsRoleAvailable(ctx context.Context, agencyID, roleSubstring string) (bool, error)
	Invalidate(ctx context.Context, agencyID string) error
}
