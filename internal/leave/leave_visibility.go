package leave

import "go-agency/internal/role"

// viewer is an actor reduced to what visibility needs.
type viewer struct {
	userID string
	class  role.Class
	// supervisorAvailable only matters for HR viewers.
	supervisorAvailable bool
}

// visibleTo decides whether a non-admin viewer may see a leave. Admins see
// everything in their agency and are not routed through here.
func visibleTo(v viewer, l Leave) bool {
	if l.ApplicantUserID() == v.userID {
		return true
	}

	applicant := role.Classify(l.ApplicantRole())
	awaitingSignature := l.Status == StatusAgencyApproved && l.IsEmergency()

	if v.class.IsHR() {
		switch {
		case l.Status == StatusSupervisorApproved:
			return true
		case l.Status == StatusPending && !applicant.IsAdminOrHR() && !v.supervisorAvailable:
			return true
		case l.Status == StatusPending && applicant.IsSupervisor():
			return true
		case awaitingSignature && !applicant.IsAdminOrHR() && l.HRApprovedAt == nil:
			return true
		case isApprovedByUser(l.HRApprovedBy, v.userID):
			return true
		}
	}

	if v.class.IsSupervisor() {
		switch {
		case l.Status == StatusPending && applicant.IsFrontline():
			return true
		case awaitingSignature && applicant.IsFrontline() && l.SupervisorApprovedAt == nil:
			return true
		case isApprovedByUser(l.SupervisorApprovedBy, v.userID):
			return true
		}
	}

	return false
}

func filterVisible(v viewer, leaves []Leave) []Leave {
	out := make([]Leave, 0, len(leaves))
	for _, l := range leaves {
		if visibleTo(v, l) {
			out = append(out, l)
		}
	}
	return out
}
