package domain

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role define o papel de um usuário no sistema.
type Role string

const (
	// RoleCentral tem visibilidade irrestrita sobre todas as sucursais.
	RoleCentral Role = "CENTRAL"
	// RoleBranch fica restrito à sua própria sucursal.
	RoleBranch Role = "BRANCH"
)

// ParseRole converte uma string em Role, aceitando qualquer caixa.
func ParseRole(s string) (Role, bool) {
	switch {
	case strings.EqualFold(s, string(RoleCentral)):
		return RoleCentral, true
	case strings.EqualFold(s, string(RoleBranch)):
		return RoleBranch, true
	}
	return "", false
}

type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Branch       *string    `json:"branch"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// Principal é a identidade já autenticada repassada aos casos de uso.
// Branch só é preenchido para o papel BRANCH.
type Principal struct {
	Username string
	Email    string
	Role     Role
	Branch   string
}

// IsCentral indica se o principal pertence ao escritório central.
func (p Principal) IsCentral() bool {
	return p.Role == RoleCentral
}

type Claims struct {
	UserID     int    `json:"user_id"`
	Username   string `json:"username"`
	UserEmail  string `json:"email"`
	UserRole   string `json:"role"`
	UserBranch string `json:"branch"`
	jwt.RegisteredClaims
}

// ToPrincipal converte as claims do token no principal usado pelos serviços.
func (c *Claims) ToPrincipal() Principal {
	role, _ := ParseRole(c.UserRole)
	return Principal{
		Username: c.Username,
		Email:    c.UserEmail,
		Role:     role,
		Branch:   c.UserBranch,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Branch   string `json:"branch"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

// JwtAuthResponse devolve o token emitido junto com o escopo do usuário.
type JwtAuthResponse struct {
	Token     string  `json:"token"`
	TokenType string  `json:"token_type"`
	ExpiresIn int64   `json:"expires_in"`
	Role      Role    `json:"role"`
	Branch    *string `json:"branch"`
}

type UserResponse struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Branch    *string   `json:"branch"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse projeta o usuário sem os campos sensíveis.
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Branch:    u.Branch,
		CreatedAt: u.CreatedAt,
	}
}
