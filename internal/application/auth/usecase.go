// Package auth implementa registro de empleados y login. El token emitido
// lleva la identidad completa del llamador (usuario, empresa, sucursal,
// empleado, rol) para que el resto del sistema no re-verifique credenciales.
package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
	"github.com/jhoicas/Comercio-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	employees repository.EmployeeRepository
	companies repository.CompanyRepository
	jwtCfg    JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(employees repository.EmployeeRepository, companies repository.CompanyRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{employees: employees, companies: companies, jwtCfg: jwtCfg}
}

func validRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleManager, entity.RoleBiller, entity.RoleStorekeeper:
		return true
	}
	return false
}

// RegisterEmployee crea un empleado con el password hasheado (bcrypt).
// El email es único dentro de la empresa.
func (uc *UseCase) RegisterEmployee(companyID, branchID, name, email, phone, password, role string) (*entity.Employee, error) {
	if email == "" || password == "" || branchID == "" || !validRole(role) {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companies.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	if existing, _ := uc.employees.GetByEmail(companyID, email); existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if name == "" {
		name = email
	}
	emp := &entity.Employee{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		BranchID:     branchID,
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.employees.Create(emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Login verifica email/password contra la empresa y emite el JWT.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.CompanyID == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	emp, err := uc.employees.GetByEmail(in.CompanyID, in.Email)
	if err != nil || emp == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:     emp.ID,
		CompanyID:  emp.CompanyID,
		BranchID:   emp.BranchID,
		EmployeeID: emp.ID,
		Role:       emp.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:      token,
		EmployeeID: emp.ID,
		BranchID:   emp.BranchID,
		Role:       emp.Role,
	}, nil
}
