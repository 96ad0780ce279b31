package leave

import "go-agency/internal/role"

const (
	PendingSupervisor        = "Supervisor"
	PendingHR                = "HR"
	PendingAgencyAdmin       = "Agency Admin"
	PendingSupervisorPostAcc = "Supervisor (Post-Acceptance)"
	PendingHRPostAcc         = "HR (Post-Acceptance)"
	PendingAdminPostAcc      = "Agency Admin (Post-Acceptance)"
)

// PendingWith names who the leave is waiting on. It is derived from the
// stored state on every read and never persisted. Post-acceptance labels on
// emergency leave are audit prompts only; they do not gate the status.
func PendingWith(l Leave) string {
	applicant := role.Classify(l.ApplicantRole())

	switch l.Status {
	case StatusPending:
		switch {
		case applicant.IsHR():
			return PendingAgencyAdmin
		case applicant.IsSupervisor():
			return PendingHR
		default:
			return PendingSupervisor
		}
	case StatusSupervisorApproved:
		return PendingHR
	case StatusHRApproved:
		return PendingAgencyAdmin
	case StatusAgencyApproved:
		if !l.IsEmergency() {
			return ""
		}
		switch {
		case l.SupervisorApprovedAt == nil && applicant.IsFrontline():
			return PendingSupervisorPostAcc
		case l.HRApprovedAt == nil && !applicant.IsAdminOrHR():
			return PendingHRPostAcc
		case l.AgencyApprovedBy != nil && l.AgencyApprovedBy.IsSystem():
			return PendingAdminPostAcc
		}
	}
	return ""
}
