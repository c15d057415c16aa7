package leavebalance

type BalanceResponse struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	LeaveTypeID     string `json:"leave_type_id"`
	Year            int    `json:"year"`
	Allocated       string `json:"allocated"`
	Used            string `json:"used"`
	Pending         string `json:"pending"`
	Remaining       string `json:"remaining"`
	LastAccrualDate string `json:"last_accrual_date"`
}

type AccrueBalanceRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	Year        int    `json:"year" binding:"required"`
	Days        string `json:"days" binding:"required"`
}

type ReconcileBalanceRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	Year        int    `json:"year" binding:"required"`
	Allocated   string `json:"allocated" binding:"required"`
	Used        string `json:"used" binding:"required"`
	Pending     string `json:"pending" binding:"required"`
	Remaining   string `json:"remaining" binding:"required"`
}
