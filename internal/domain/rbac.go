package domain

// EnforceRequest asks whether a role name may perform action on resource
// within one agency.
type EnforceRequest struct {
	Role     string `json:"role"`
	AgencyID string `json:"agency_id" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool     `json:"allowed"`
	Classes []string `json:"classes"`
}

type PolicyResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
