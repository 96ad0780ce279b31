package directory

type AvailabilityRequest struct {
	Role string `form:"role" binding:"required,max=100"`
}

type AvailabilityResponse struct {
	Role      string `json:"role"`
	Date      string `json:"date"`
	Available bool   `json:"available"`
}
