package rbac_test

import (
	"context"
	"testing"

	"go-hris-leave/internal/rbac"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepository_GetEmployeeRoles(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	mock.ExpectQuery(`SELECT employee_roles.employee_id, employee_roles.role_id FROM "employee_roles" JOIN roles .* WHERE roles.tenant_id = \$1`).
		WithArgs("tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "role_id"}).AddRow("emp-1", "role-1"))

	rows, err := rbac.NewRepository(gdb).GetEmployeeRoles(context.Background(), "tenant-1")
	assert.NoError(t, err)
	assert.Equal(t, []rbac.EmployeeRoleRow{{EmployeeID: "emp-1", RoleID: "role-1"}}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetRolePermissions(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	mock.ExpectQuery(`FROM "role_permissions" JOIN roles .* JOIN permissions .* WHERE roles.tenant_id = \$1`).
		WithArgs("tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{"role_id", "resource", "action"}).AddRow("role-1", "leave", "approve"))

	rows, err := rbac.NewRepository(gdb).GetRolePermissions(context.Background(), "tenant-1")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "approve", rows[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}
