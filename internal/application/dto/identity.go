package dto

// Identity contexto del llamador resuelto aguas arriba (token ya verificado).
// El núcleo confía en estos campos y no re-verifica la credencial.
type Identity struct {
	UserID     string
	CompanyID  string
	BranchID   string
	EmployeeID string
	Role       string
}
