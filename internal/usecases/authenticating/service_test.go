package authenticating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(userRepo *mocks.MockUserRepository) *Service {
	return &Service{
		userRepo: userRepo,
		cfg:      &config.Config{SecretKey: "segredo-de-teste"},
		now:      time.Now,
	}
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name        string
		request     *domain.RegisterRequest
		setup       func(userRepo *mocks.MockUserRepository)
		expectedErr error
		validate    func(t *testing.T, user *domain.UserResponse)
	}{
		{
			name:    "BRANCH exige sucursal",
			request: &domain.RegisterRequest{Username: "mira", Email: "mira@x.io", Password: "senha123", Role: "BRANCH"},
			setup:   func(userRepo *mocks.MockUserRepository) {},
			expectedErr: ErrMissingRequiredData,
		},
		{
			name:        "papel desconhecido é rejeitado",
			request:     &domain.RegisterRequest{Username: "x", Email: "x@x.io", Password: "senha123", Role: "MANAGER"},
			setup:       func(userRepo *mocks.MockUserRepository) {},
			expectedErr: ErrInvalidRole,
		},
		{
			name:    "username duplicado devolve conflito",
			request: &domain.RegisterRequest{Username: "mira", Email: "mira@x.io", Password: "senha123", Role: "BRANCH", Branch: "Miraflores"},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByUsername("mira").Return(&domain.User{Username: "mira"}, nil)
			},
			expectedErr: ErrUserAlreadyExists,
		},
		{
			name:    "CENTRAL tem a sucursal descartada",
			request: &domain.RegisterRequest{Username: "hq", Email: "HQ@X.io", Password: "senha123", Role: "central", Branch: "Miraflores"},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByUsername("hq").Return(nil, nil)
				userRepo.EXPECT().GetUserByEmail("hq@x.io").Return(nil, nil)
				userRepo.EXPECT().
					CreateUser(gomock.Any()).
					DoAndReturn(func(user *domain.User) (*domain.User, error) {
						assert.Equal(t, domain.RoleCentral, user.Role)
						assert.Nil(t, user.Branch)
						assert.NotEqual(t, "senha123", user.PasswordHash)
						user.ID = 1
						return user, nil
					})
			},
			validate: func(t *testing.T, user *domain.UserResponse) {
				assert.Equal(t, domain.RoleCentral, user.Role)
				assert.Nil(t, user.Branch)
				assert.Equal(t, "hq@x.io", user.Email)
			},
		},
		{
			name:    "BRANCH com sucursal é criado",
			request: &domain.RegisterRequest{Username: "mira", Email: "mira@x.io", Password: "senha123", Role: "BRANCH", Branch: "Miraflores"},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByUsername("mira").Return(nil, nil)
				userRepo.EXPECT().GetUserByEmail("mira@x.io").Return(nil, nil)
				userRepo.EXPECT().
					CreateUser(gomock.Any()).
					DoAndReturn(func(user *domain.User) (*domain.User, error) {
						require.NotNil(t, user.Branch)
						assert.Equal(t, "Miraflores", *user.Branch)
						user.ID = 2
						return user, nil
					})
			},
			validate: func(t *testing.T, user *domain.UserResponse) {
				require.NotNil(t, user.Branch)
				assert.Equal(t, "Miraflores", *user.Branch)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := mocks.NewMockUserRepository(ctrl)
			tt.setup(userRepo)

			service := newTestService(userRepo)

			user, err := service.Register(tt.request)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			tt.validate(t, user)
		})
	}
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.MinCost)
	require.NoError(t, err)

	branch := "Miraflores"
	storedUser := &domain.User{
		ID:           7,
		Username:     "mira",
		Email:        "mira@x.io",
		PasswordHash: string(hash),
		Role:         domain.RoleBranch,
		Branch:       &branch,
	}

	t.Run("login com username emite token com papel e sucursal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByUsername("mira").Return(storedUser, nil)

		service := newTestService(userRepo)

		response, err := service.Login(&domain.LoginRequest{UsernameOrEmail: "mira", Password: "senha123"})
		require.NoError(t, err)

		assert.Equal(t, "Bearer", response.TokenType)
		assert.Equal(t, domain.RoleBranch, response.Role)

		claims, err := service.ValidateToken(response.Token)
		require.NoError(t, err)
		assert.Equal(t, "mira", claims.Username)
		assert.Equal(t, "BRANCH", claims.UserRole)
		assert.Equal(t, "Miraflores", claims.UserBranch)
	})

	t.Run("login com email quando username não existe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByUsername("mira@x.io").Return(nil, nil)
		userRepo.EXPECT().GetUserByEmail("mira@x.io").Return(storedUser, nil)

		service := newTestService(userRepo)

		_, err := service.Login(&domain.LoginRequest{UsernameOrEmail: "mira@x.io", Password: "senha123"})
		require.NoError(t, err)
	})

	t.Run("senha incorreta devolve credenciais inválidas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByUsername("mira").Return(storedUser, nil)

		service := newTestService(userRepo)

		_, err := service.Login(&domain.LoginRequest{UsernameOrEmail: "mira", Password: "errada"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("token adulterado é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)

		service := newTestService(userRepo)

		_, err := service.ValidateToken("token-invalido")
		assert.Error(t, err)
	})
}

func TestService_DeleteUser(t *testing.T) {
	requester := domain.Principal{Username: "hq", Role: domain.RoleCentral}

	t.Run("não pode excluir o próprio usuário", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByID(1).Return(&domain.User{ID: 1, Username: "hq"}, nil)

		service := newTestService(userRepo)

		err := service.DeleteUser(1, requester)
		assert.ErrorIs(t, err, ErrSelfDeletion)
	})

	t.Run("usuário inexistente devolve not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByID(99).Return(nil, nil)

		service := newTestService(userRepo)

		err := service.DeleteUser(99, requester)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("exclusão válida remove o usuário", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetUserByID(2).Return(&domain.User{ID: 2, Username: "mira"}, nil)
		userRepo.EXPECT().DeleteByID(2).Return(nil)

		service := newTestService(userRepo)

		assert.NoError(t, service.DeleteUser(2, requester))
	})
}
