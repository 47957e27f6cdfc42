package employee

import (
	"context"
	"database/sql"

	"go-hris-leave/internal/shared/connection"
	"go-hris-leave/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Employee, error)
	// FindByIDAndTenantForUpdate locks the employee row until the surrounding transaction ends.
	FindByIDAndTenantForUpdate(ctx context.Context, tenantID, id string) (*Employee, error)
	UpdateLeaveBalances(ctx context.Context, e *Employee) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Employee, error) {
	var empl Employee
	err := connection.Session(ctx, r.db, r.tx).
		Scopes(tenant.Scope(tenantID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &empl, nil
}

func (r *repository) FindByIDAndTenantForUpdate(ctx context.Context, tenantID, id string) (*Employee, error) {
	var empl Employee
	err := connection.Session(ctx, r.db, r.tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(tenantID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &empl, nil
}

func (r *repository) UpdateLeaveBalances(ctx context.Context, e *Employee) error {
	res := connection.Session(ctx, r.db, r.tx).
		Model(&Employee{}).
		Scopes(tenant.Scope(e.TenantID.String())).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"vacation_balance": e.VacationBalance,
			"sick_balance":     e.SickBalance,
			"personal_balance": e.PersonalBalance,
		})
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapRepositoryError(gorm.ErrRecordNotFound)
	}
	return nil
}
