package rbac

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type MyPermissionsResponse struct {
	Roles       []string             `json:"roles"`
	Permissions []PermissionResponse `json:"permissions"`
}
