package rbac

import (
	"context"
	"sync"

	"go-hris-leave/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	LoadTenantPolicy(ctx context.Context, tenantID string) error
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
	Permissions(ctx context.Context, tenantID, employeeID string) (MyPermissionsResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadTenantPolicy(ctx context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadTenantPolicyUnlocked(ctx, tenantID)
}

// loadTenantPolicyUnlocked replaces the enforcer's policy with the tenant's current rows.
func (s *service) loadTenantPolicyUnlocked(ctx context.Context, tenantID string) error {
	s.enforcer.ClearPolicy()

	employeeRoles, err := s.repo.GetEmployeeRoles(ctx, tenantID)
	if err != nil {
		return err
	}
	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID, tenantID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(ctx, tenantID)
	if err != nil {
		return err
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, tenantID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.String("tenant_id", tenantID),
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

func (s *service) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadTenantPolicyUnlocked(ctx, req.TenantID); err != nil {
		s.logger.Error("rbac load policy failed", zap.String("tenant_id", req.TenantID), zap.Error(err))
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.EmployeeID, req.TenantID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("tenant_id", req.TenantID),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("tenant_id", req.TenantID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(ctx context.Context, tenantID, employeeID string) (MyPermissionsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadTenantPolicyUnlocked(ctx, tenantID); err != nil {
		return MyPermissionsResponse{}, err
	}

	perms, err := s.enforcer.GetImplicitPermissionsForUser(employeeID, tenantID)
	if err != nil {
		return MyPermissionsResponse{}, err
	}

	resp := MyPermissionsResponse{
		Roles:       s.enforcer.GetRolesForUserInDomain(employeeID, tenantID),
		Permissions: make([]PermissionResponse, 0, len(perms)),
	}
	// rows are sub, dom, obj, act
	for _, p := range perms {
		if len(p) < 4 {
			continue
		}
		resp.Permissions = append(resp.Permissions, PermissionResponse{Resource: p[2], Action: p[3]})
	}
	return resp, nil
}
