// Package authenticating cuida do cadastro, login e validação de tokens,
// além da administração de usuários pelo escritório central.
package authenticating

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type Authenticator interface {
	Register(request *domain.RegisterRequest) (*domain.UserResponse, error)
	Login(request *domain.LoginRequest) (*domain.JwtAuthResponse, error)
	GetProfile(username string) (*domain.UserResponse, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	ListUsers() ([]*domain.UserResponse, error)
	GetUserByID(userID int) (*domain.UserResponse, error)
	DeleteUser(userID int, requester domain.Principal) error
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Register cria um usuário novo. Branch é obrigatório para o papel BRANCH e
// descartado para CENTRAL.
func (s *Service) Register(request *domain.RegisterRequest) (*domain.UserResponse, error) {
	if request.Username == "" || request.Email == "" || request.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Username, email e senha são obrigatórios")
	}

	role, ok := domain.ParseRole(request.Role)
	if !ok {
		return nil, NewAuthError(ErrInvalidRole, apiErrors.ErrInvalidRole, "")
	}

	var branch *string
	if role == domain.RoleBranch {
		if strings.TrimSpace(request.Branch) == "" {
			return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Branch é obrigatório para usuários BRANCH")
		}
		b := strings.TrimSpace(request.Branch)
		branch = &b
	}

	email := handleEmail(request.Email)

	if existing, err := s.userRepo.GetUserByUsername(request.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Username já cadastrado")
	}

	if existing, err := s.userRepo.GetUserByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     request.Username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Branch:       branch,
	}

	user, err = s.userRepo.CreateUser(user)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	logrus.WithFields(logrus.Fields{
		"username": user.Username,
		"role":     user.Role,
	}).Info("Usuário cadastrado")

	return user.ToResponse(), nil
}

// Login aceita username ou email e devolve um JWT com papel e sucursal.
func (s *Service) Login(request *domain.LoginRequest) (*domain.JwtAuthResponse, error) {
	if request.UsernameOrEmail == "" || request.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrInvalidRequest, "Usuário e senha são obrigatórios")
	}

	user, err := s.userRepo.GetUserByUsername(request.UsernameOrEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.userRepo.GetUserByEmail(handleEmail(request.UsernameOrEmail))
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &domain.JwtAuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(tokenTTL.Seconds()),
		Role:      user.Role,
		Branch:    user.Branch,
	}, nil
}

func (s *Service) generateToken(user *domain.User) (string, error) {
	now := s.now()

	branch := ""
	if user.Branch != nil {
		branch = *user.Branch
	}

	claims := &domain.Claims{
		UserID:     user.ID,
		Username:   user.Username,
		UserEmail:  user.Email,
		UserRole:   string(user.Role),
		UserBranch: branch,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) GetProfile(username string) (*domain.UserResponse, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "")
	}

	return user.ToResponse(), nil
}

func (s *Service) ListUsers() ([]*domain.UserResponse, error) {
	users, err := s.userRepo.ListUsers()
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}

	return responses, nil
}

func (s *Service) GetUserByID(userID int) (*domain.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "")
	}

	return user.ToResponse(), nil
}

// DeleteUser remove um usuário. O solicitante não pode excluir a si mesmo.
func (s *Service) DeleteUser(userID int, requester domain.Principal) error {
	target, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if target == nil {
		return NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "")
	}

	if strings.EqualFold(target.Username, requester.Username) {
		return NewAuthError(ErrSelfDeletion, apiErrors.ErrInvalidRequest, "")
	}

	if err := s.userRepo.DeleteByID(userID); err != nil {
		return err
	}

	logrus.WithField("user_id", userID).Info("Usuário excluído")

	return nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}
