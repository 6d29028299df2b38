package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Papéis reconhecidos pela aplicação. O papel vem sempre do roster
// estático, nunca da planilha.
const (
	RoleSalesperson = "salesperson"
	RoleManager     = "manager"
)

// SalesUser representa um membro autorizado do time de vendas
type SalesUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// IsManager indica se o usuário tem papel de gerente
func (u *SalesUser) IsManager() bool {
	return u.Role == RoleManager
}

type Claims struct {
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
	UserRole  string `json:"user_role"`
	jwt.RegisteredClaims
}
