package leave

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	LeaveType  string `json:"leave_type" binding:"required,oneof=SICK CASUAL ANNUAL EMERGENCY"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

// ApproveLeaveRequest drives approveLeave. Any status other than REJECTED is
// an approval trigger; the resulting status is computed by the routing rules.
type ApproveLeaveRequest struct {
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
}

func (r ApproveLeaveRequest) IsRejection() bool {
	return Status(r.Status) == StatusRejected
}

// Actor is the authenticated principal acting on a leave.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       string
}

type LeaveResponse struct {
	ID                   string  `json:"id"`
	AgencyID             string  `json:"agency_id"`
	EmployeeID           string  `json:"employee_id"`
	EmployeeName         string  `json:"employee_name"`
	ApplicantRole        string  `json:"applicant_role"`
	LeaveType            string  `json:"leave_type"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	TotalDays            int     `json:"total_days"`
	Reason               string  `json:"reason"`
	Status               string  `json:"status"`
	PendingWith          string  `json:"pending_with"`
	CreatedBy            string  `json:"created_by"`
	AppliedAt            string  `json:"applied_at"`
	SupervisorApprovedAt *string `json:"supervisor_approved_at,omitempty"`
	SupervisorApprovedBy *string `json:"supervisor_approved_by,omitempty"`
	HRApprovedAt         *string `json:"hr_approved_at,omitempty"`
	HRApprovedBy         *string `json:"hr_approved_by,omitempty"`
	AgencyApprovedAt     *string `json:"agency_approved_at,omitempty"`
	AgencyApprovedBy     *string `json:"agency_approved_by,omitempty"`
	RejectionReason      *string `json:"rejection_reason,omitempty"`
}
