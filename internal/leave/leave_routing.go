package leave

import (
	"context"
	"time"

	leaveerrors "go-agency/internal/leave/errors"
	"go-agency/internal/role"

	"github.com/google/uuid"
)

type stamp struct {
	At time.Time
	By ApprovedBy
}

// leaveUpdate is the complete set of changes for one approveLeave call.
// It is computed before anything is written; nil fields are left untouched.
type leaveUpdate struct {
	Status             *Status
	RejectionReason    *string
	SupervisorApproved *stamp
	HRApproved         *stamp
	AgencyApproved     *stamp
}

func (u leaveUpdate) apply(l *Leave) {
	if u.Status != nil {
		l.Status = *u.Status
	}
	if u.RejectionReason != nil {
		reason := *u.RejectionReason
		l.RejectionReason = &reason
	}
	if u.SupervisorApproved != nil {
		at := u.SupervisorApproved.At
		l.SupervisorApprovedAt = &at
		l.SupervisorApprovedBy = approvedByPtr(u.SupervisorApproved.By)
	}
	if u.HRApproved != nil {
		at := u.HRApproved.At
		l.HRApprovedAt = &at
		l.HRApprovedBy = approvedByPtr(u.HRApproved.By)
	}
	if u.AgencyApproved != nil {
		at := u.AgencyApproved.At
		l.AgencyApprovedAt = &at
		l.AgencyApprovedBy = approvedByPtr(u.AgencyApproved.By)
	}
}

func statusPtr(s Status) *Status {
	return &s
}

// availabilityFunc reports whether some user of the given role is at work today.
// It is only consulted on the branches that need it.
type availabilityFunc func(ctx context.Context, roleSubstring string) (bool, error)

// checkActionable enforces terminal states. Emergency leave is accepted at
// creation but still collects approvals afterwards.
// Rejection is refused on AGENCY_APPROVED, emergency included: the terminal
// state rule takes precedence over rejecting from any state.
func checkActionable(l Leave, rejecting bool) error {
	switch l.Status {
	case StatusRejected:
		return leaveerrors.ErrInvalidStatusTransition
	case StatusAgencyApproved:
		if rejecting || !l.IsEmergency() {
			return leaveerrors.ErrInvalidStatusTransition
		}
	}
	return nil
}

func planRejection(l Leave, reason string) (leaveUpdate, error) {
	if err := checkActionable(l, true); err != nil {
		return leaveUpdate{}, err
	}
	if reason == "" {
		return leaveUpdate{}, leaveerrors.ErrRejectionReasonRequired
	}
	return leaveUpdate{
		Status:          statusPtr(StatusRejected),
		RejectionReason: &reason,
	}, nil
}

func planApproval(
	ctx context.Context,
	l Leave,
	approver role.Class,
	approverID uuid.UUID,
	now time.Time,
	available availabilityFunc,
) (leaveUpdate, error) {
	if approver.IsAdmin() {
		// An admin may re-sign a final leave, never revive a rejected one.
		if l.Status == StatusRejected {
			return leaveUpdate{}, leaveerrors.ErrInvalidStatusTransition
		}
	} else if err := checkActionable(l, false); err != nil {
		return leaveUpdate{}, err
	}

	applicant := role.Classify(l.ApplicantRole())
	own := &stamp{At: now, By: ApprovedByUser(approverID)}

	switch {
	case approver.IsAdmin():
		// Admin approval is final and signs every stage still unsigned.
		u := leaveUpdate{
			Status:         statusPtr(StatusAgencyApproved),
			AgencyApproved: own,
		}
		if l.SupervisorApprovedAt == nil {
			u.SupervisorApproved = own
		}
		if l.HRApprovedAt == nil {
			u.HRApproved = own
		}
		return u, nil

	case approver.IsHR():
		if applicant.IsAdminOrHR() {
			return leaveUpdate{}, leaveerrors.ErrHRCannotApprove
		}
		u := leaveUpdate{HRApproved: own}
		if l.IsEmergency() {
			return u, nil
		}
		u.Status = statusPtr(StatusAgencyApproved)
		u.AgencyApproved = own
		if l.SupervisorApprovedAt == nil {
			u.SupervisorApproved = own
		}
		return u, nil

	case approver.IsSupervisor():
		if !applicant.IsFrontline() {
			return leaveUpdate{}, leaveerrors.ErrSupervisorCannotApprove
		}
		u := leaveUpdate{SupervisorApproved: own}
		if l.IsEmergency() {
			return u, nil
		}
		hrAvailable, err := available(ctx, role.TokenHR)
		if err != nil {
			return leaveUpdate{}, err
		}
		if hrAvailable {
			// Only a pending leave advances; later stages just gain the signature.
			if l.Status == StatusPending {
				u.Status = statusPtr(StatusSupervisorApproved)
			}
			return u, nil
		}
		// Nobody from HR is at work: the supervisor is the final authority.
		u.Status = statusPtr(StatusAgencyApproved)
		u.HRApproved = own
		u.AgencyApproved = own
		return u, nil

	default:
		return leaveUpdate{}, leaveerrors.ErrNotAnApprover
	}
}
