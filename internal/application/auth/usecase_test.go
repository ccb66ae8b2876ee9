package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/infrastructure/memory"
	"github.com/jhoicas/Comercio-api/pkg/jwt"
)

func newUseCase(t *testing.T) (*UseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.PutCompany(entity.Company{ID: "co-1", Name: "Comercio Norte"})
	store.PutBranch(entity.Branch{ID: "br-1", CompanyID: "co-1", Name: "Sucursal Centro"})
	uc := NewUseCase(store.Employees(), store.Companies(), JWTConfig{
		Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "comercio-pos",
	})
	return uc, store
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newUseCase(t)

	emp, err := uc.RegisterEmployee("co-1", "br-1", "Ana", "ana@comercio.test", "3001112233", "clave123", entity.RoleBiller)
	require.NoError(t, err)
	assert.NotEqual(t, "clave123", emp.PasswordHash)

	resp, err := uc.Login(dto.LoginRequest{CompanyID: "co-1", Email: "ana@comercio.test", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, emp.ID, resp.EmployeeID)
	assert.Equal(t, "br-1", resp.BranchID)
	assert.Equal(t, entity.RoleBiller, resp.Role)

	// El token lleva la identidad completa
	id, err := jwt.Parse("secreto-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, emp.ID, id.EmployeeID)
	assert.Equal(t, "co-1", id.CompanyID)
	assert.Equal(t, "br-1", id.BranchID)
	assert.Equal(t, entity.RoleBiller, id.Role)
}

func TestLoginWrongPasswordRejected(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.RegisterEmployee("co-1", "br-1", "Ana", "ana@comercio.test", "", "clave123", entity.RoleBiller)
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{CompanyID: "co-1", Email: "ana@comercio.test", Password: "otra"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{CompanyID: "co-1", Email: "nadie@comercio.test", Password: "clave123"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.RegisterEmployee("co-1", "br-1", "Ana", "ana@comercio.test", "", "clave123", entity.RoleBiller)
	require.NoError(t, err)
	_, err = uc.RegisterEmployee("co-1", "br-1", "Otra", "ana@comercio.test", "", "clave456", entity.RoleManager)
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterValidatesRoleAndCompany(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.RegisterEmployee("co-1", "br-1", "Ana", "ana@comercio.test", "", "clave123", "superusuario")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterEmployee("co-inexistente", "br-1", "Ana", "ana@comercio.test", "", "clave123", entity.RoleBiller)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
