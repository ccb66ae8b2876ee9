// Package customer CRUD mínimo de clientes: lo que el motor de ventas y el
// ledger de saldos necesitan (tipo de cliente y límite de crédito).
package customer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/money"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Service casos de uso de clientes.
type Service struct {
	customers repository.CustomerRepository
}

// NewService construye el servicio de clientes.
func NewService(customers repository.CustomerRepository) *Service {
	return &Service{customers: customers}
}

// Create da de alta un cliente con saldo cero.
func (s *Service) Create(ctx context.Context, id dto.Identity, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.CreditLimit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.CustomerType != entity.CustomerTypeB2C && in.CustomerType != entity.CustomerTypeB2B {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Customer{
		ID:           uuid.New().String(),
		CompanyID:    id.CompanyID,
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		CustomerType: in.CustomerType,
		Balance:      decimal.Zero,
		CreditLimit:  money.Round2(in.CreditLimit),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.customers.Create(c); err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// Get devuelve un cliente de la empresa del llamador.
func (s *Service) Get(ctx context.Context, id dto.Identity, customerID string) (*dto.CustomerResponse, error) {
	c, err := s.customers.GetByID(customerID)
	if err != nil || c == nil {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != id.CompanyID {
		return nil, domain.ErrForbidden
	}
	return toResponse(c), nil
}

// List lista los clientes de la empresa.
func (s *Service) List(ctx context.Context, id dto.Identity, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	customers, err := s.customers.List(id.CompanyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toResponse(c))
	}
	return out, nil
}

func toResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		CustomerType: c.CustomerType,
		Balance:      c.Balance,
		CreditLimit:  c.CreditLimit,
	}
}
