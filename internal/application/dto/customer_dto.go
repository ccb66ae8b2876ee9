package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	CustomerType string          `json:"customer_type"` // B2C | B2B
	CreditLimit  decimal.Decimal `json:"credit_limit"`
}

// CustomerResponse cliente con su saldo actual.
type CustomerResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	CustomerType string          `json:"customer_type"`
	Balance      decimal.Decimal `json:"balance"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
}
