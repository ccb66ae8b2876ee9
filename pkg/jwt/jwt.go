package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity contexto del llamador resuelto desde el token.
// El núcleo confía en este contexto; la credencial solo se verifica aquí.
type Identity struct {
	UserID     string
	CompanyID  string
	BranchID   string
	EmployeeID string
	Role       string // "admin" | "manager" | "biller" | "storekeeper"
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añaden branch/employee/role para que los middlewares decidan sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id"`
	CompanyID  string `json:"company_id"`
	BranchID   string `json:"branch_id"`
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
}

// Generate genera un token JWT firmado con la identidad completa del llamador.
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     id.UserID,
		CompanyID:  id.CompanyID,
		BranchID:   id.BranchID,
		EmployeeID: id.EmployeeID,
		Role:       id.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad del llamador.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	return Identity{
		UserID:     claims.UserID,
		CompanyID:  claims.CompanyID,
		BranchID:   claims.BranchID,
		EmployeeID: claims.EmployeeID,
		Role:       claims.Role,
	}, nil
}
