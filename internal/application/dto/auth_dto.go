package dto

// LoginRequest credenciales de empleado.
type LoginRequest struct {
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegisterRequest alta de empleado.
type RegisterRequest struct {
	CompanyID string `json:"company_id"`
	BranchID  string `json:"branch_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"` // admin | manager | biller | storekeeper
}

// EmployeeResponse empleado registrado (sin hash).
type EmployeeResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	BranchID  string `json:"branch_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// LoginResponse token emitido con la identidad completa del llamador.
type LoginResponse struct {
	Token      string `json:"token"`
	EmployeeID string `json:"employee_id"`
	BranchID   string `json:"branch_id"`
	Role       string `json:"role"`
}
