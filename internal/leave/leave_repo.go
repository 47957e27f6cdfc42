package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hris-leave/internal/shared/connection"
	"go-hris-leave/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, tenantID string, filter ListFilter) ([]LeaveRequest, error)
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*LeaveRequest, error)
	FindByIDAndTenantForUpdate(ctx context.Context, tenantID, id string) (*LeaveRequest, error)
	// FindActiveOverlapping returns Pending or Approved requests of the employee intersecting [start, end].
	FindActiveOverlapping(ctx context.Context, tenantID, employeeID string, start, end time.Time) ([]LeaveRequest, error)
	UpdateDecision(ctx context.Context, l *LeaveRequest) error
	Delete(ctx context.Context, tenantID, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return mapRepositoryError(connection.Session(ctx, r.db, r.tx).Create(l).Error)
}

func (r *repository) FindAll(ctx context.Context, tenantID string, filter ListFilter) ([]LeaveRequest, error) {
	q := connection.Session(ctx, r.db, r.tx).Scopes(tenant.Scope(tenantID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var items []LeaveRequest
	if err := q.Order("requested_date DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := connection.Session(ctx, r.db, r.tx).
		Scopes(tenant.Scope(tenantID)).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &l, nil
}

func (r *repository) FindByIDAndTenantForUpdate(ctx context.Context, tenantID, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := connection.Session(ctx, r.db, r.tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(tenantID)).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &l, nil
}

func (r *repository) FindActiveOverlapping(ctx context.Context, tenantID, employeeID string, start, end time.Time) ([]LeaveRequest, error) {
	var items []LeaveRequest
	err := connection.Session(ctx, r.db, r.tx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateDecision writes only the columns a decision changes.
func (r *repository) UpdateDecision(ctx context.Context, l *LeaveRequest) error {
	res := connection.Session(ctx, r.db, r.tx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Scope(l.TenantID.String())).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"status":        l.Status,
			"duration_days": l.DurationDays,
			"decided_by":    l.DecidedBy,
			"decided_at":    l.DecidedAt,
		})
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapRepositoryError(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	res := connection.Session(ctx, r.db, r.tx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&LeaveRequest{}, "id = ?", id)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapRepositoryError(gorm.ErrRecordNotFound)
	}
	return nil
}
