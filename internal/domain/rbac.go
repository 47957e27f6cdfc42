package domain

// EnforceRequest asks whether an employee may perform action on resource inside a tenant.
type EnforceRequest struct {
	EmployeeID string `json:"employeeId"`
	TenantID   string `json:"tenantId"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
