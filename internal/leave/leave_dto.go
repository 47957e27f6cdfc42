package leave

import "github.com/shopspring/decimal"

type SubmitLeaveRequest struct {
	EmployeeID string `json:"employeeId" binding:"required,uuid"`
	Type       string `json:"type" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type DecideLeaveRequest struct {
	Status string `json:"status" binding:"required,oneof=Approved Rejected"`
}

type ListLeaveRequestsQuery struct {
	EmployeeID string `form:"employeeId" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=Pending Approved Rejected"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type ListFilter struct {
	EmployeeID string
	Status     string
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	TenantID      string  `json:"tenantId"`
	EmployeeID    string  `json:"employeeId"`
	RequestNumber string  `json:"requestNumber"`
	Type          string  `json:"type"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	DurationDays  int     `json:"durationDays"`
	Reason        string  `json:"reason"`
	RequestedDate string  `json:"requestedDate"`
	Status        string  `json:"status"`
	DecidedBy     *string `json:"decidedBy,omitempty"`
	DecidedAt     *string `json:"decidedAt,omitempty"`
}

type LeaveBalanceResponse struct {
	EmployeeID string          `json:"employeeId"`
	Vacation   decimal.Decimal `json:"vacation"`
	Sick       decimal.Decimal `json:"sick"`
	Personal   decimal.Decimal `json:"personal"`
}
