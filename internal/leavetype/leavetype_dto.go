package leavetype

type CreateLeaveTypeRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	DefaultAllocation string `json:"default_allocation" binding:"required"`
	RequiresApproval  *bool  `json:"requires_approval"`
}

type LeaveTypeResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	DefaultAllocation string `json:"default_allocation"`
	RequiresApproval  bool   `json:"requires_approval"`
	IsActive          bool   `json:"is_active"`
}
