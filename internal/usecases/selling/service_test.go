package selling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var (
	centralPrincipal = domain.Principal{Username: "hq", Email: "hq@sales-tracker.local", Role: domain.RoleCentral}
	branchPrincipal  = domain.Principal{Username: "mira", Email: "mira@sales-tracker.local", Role: domain.RoleBranch, Branch: "Miraflores"}
)

func newTestService(saleRepo *mocks.MockSaleRepository, now time.Time) *Service {
	return &Service{
		saleRepo: saleRepo,
		now:      func() time.Time { return now },
	}
}

func TestService_Create(t *testing.T) {
	soldAt := time.Date(2026, 8, 18, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		request     *domain.SaleRequest
		principal   domain.Principal
		setup       func(saleRepo *mocks.MockSaleRepository)
		expectedErr error
	}{
		{
			name:      "BRANCH registra venda na própria sucursal",
			request:   &domain.SaleRequest{SKU: "OREO-CLASSIC", Units: 10, Price: 1.99, Branch: "Miraflores", SoldAt: soldAt},
			principal: branchPrincipal,
			setup: func(saleRepo *mocks.MockSaleRepository) {
				saleRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(sale *domain.Sale) (*domain.Sale, error) {
						assert.NotEmpty(t, sale.ID)
						assert.Equal(t, "mira", sale.CreatedBy)
						return sale, nil
					})
			},
		},
		{
			name:        "BRANCH não registra venda para outra sucursal",
			request:     &domain.SaleRequest{SKU: "OREO-CLASSIC", Units: 10, Price: 1.99, Branch: "San Isidro", SoldAt: soldAt},
			principal:   branchPrincipal,
			setup:       func(saleRepo *mocks.MockSaleRepository) {},
			expectedErr: ErrBranchForbidden,
		},
		{
			name:      "CENTRAL registra venda para qualquer sucursal",
			request:   &domain.SaleRequest{SKU: "OREO-DOUBLE", Units: 5, Price: 2.49, Branch: "San Isidro", SoldAt: soldAt},
			principal: centralPrincipal,
			setup: func(saleRepo *mocks.MockSaleRepository) {
				saleRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(sale *domain.Sale) (*domain.Sale, error) {
						return sale, nil
					})
			},
		},
		{
			name:        "unidades não positivas são rejeitadas",
			request:     &domain.SaleRequest{SKU: "OREO-CLASSIC", Units: 0, Price: 1.99, Branch: "Miraflores", SoldAt: soldAt},
			principal:   branchPrincipal,
			setup:       func(saleRepo *mocks.MockSaleRepository) {},
			expectedErr: ErrInvalidSaleData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			saleRepo := mocks.NewMockSaleRepository(ctrl)
			tt.setup(saleRepo)

			service := newTestService(saleRepo, time.Now())

			response, err := service.Create(context.Background(), tt.request, tt.principal)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, response)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.request.SKU, response.SKU)
		})
	}
}

func TestService_FindByID(t *testing.T) {
	sale := &domain.Sale{ID: "abc123", SKU: "OREO-CLASSIC", Units: 10, Price: 1.99, Branch: "San Isidro"}

	t.Run("venda inexistente devolve not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		saleRepo.EXPECT().FindByID("missing").Return(nil, nil)

		service := newTestService(saleRepo, time.Now())

		_, err := service.FindByID(context.Background(), "missing", centralPrincipal)
		assert.ErrorIs(t, err, ErrSaleNotFound)
	})

	t.Run("BRANCH não lê venda de outra sucursal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		saleRepo.EXPECT().FindByID("abc123").Return(sale, nil)

		service := newTestService(saleRepo, time.Now())

		_, err := service.FindByID(context.Background(), "abc123", branchPrincipal)
		assert.ErrorIs(t, err, ErrSaleForbidden)
	})
}

func TestService_Update(t *testing.T) {
	soldAt := time.Date(2026, 8, 18, 10, 0, 0, 0, time.UTC)

	t.Run("BRANCH não muda a sucursal da venda", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		saleRepo.EXPECT().
			FindByID("abc123").
			Return(&domain.Sale{ID: "abc123", SKU: "OREO-CLASSIC", Units: 10, Price: 1.99, Branch: "Miraflores", SoldAt: soldAt}, nil)

		service := newTestService(saleRepo, time.Now())

		request := &domain.SaleRequest{SKU: "OREO-CLASSIC", Units: 10, Price: 1.99, Branch: "San Isidro", SoldAt: soldAt}
		_, err := service.Update(context.Background(), "abc123", request, branchPrincipal)
		assert.ErrorIs(t, err, ErrBranchChangeForbidden)
	})

	t.Run("CENTRAL pode mover a venda de sucursal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		saleRepo.EXPECT().
			FindByID("abc123").
			Return(&domain.Sale{ID: "abc123", SKU: "OREO-CLASSIC", Units: 10, Price: 1.99, Branch: "Miraflores", SoldAt: soldAt}, nil)
		saleRepo.EXPECT().
			UpdateInTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
				assert.Equal(t, "San Isidro", sale.Branch)
				return sale, nil
			})

		service := newTestService(saleRepo, time.Now())

		request := &domain.SaleRequest{SKU: "OREO-CLASSIC", Units: 10, Price: 1.99, Branch: "San Isidro", SoldAt: soldAt}
		response, err := service.Update(context.Background(), "abc123", request, centralPrincipal)
		require.NoError(t, err)
		assert.Equal(t, "San Isidro", response.Branch)
	})

	t.Run("atualização com os mesmos valores é idempotente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stored := &domain.Sale{ID: "abc123", SKU: "OREO-CLASSIC", Units: 10, Price: 1.99, Branch: "Miraflores", SoldAt: soldAt, CreatedBy: "mira"}

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		saleRepo.EXPECT().FindByID("abc123").Return(stored, nil)
		saleRepo.EXPECT().
			UpdateInTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
				return sale, nil
			})

		service := newTestService(saleRepo, time.Now())

		request := &domain.SaleRequest{SKU: "OREO-CLASSIC", Units: 10, Price: 1.99, Branch: "Miraflores", SoldAt: soldAt}
		response, err := service.Update(context.Background(), "abc123", request, branchPrincipal)
		require.NoError(t, err)
		assert.Equal(t, stored.ToResponse(), response)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("BRANCH nunca exclui, mesmo da própria sucursal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)

		service := newTestService(saleRepo, time.Now())

		err := service.Delete(context.Background(), "abc123", branchPrincipal)
		assert.ErrorIs(t, err, ErrDeleteNotAllowed)
	})

	t.Run("CENTRAL exclui venda de qualquer sucursal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sale := &domain.Sale{ID: "abc123", Branch: "San Isidro"}

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		saleRepo.EXPECT().FindByID("abc123").Return(sale, nil)
		saleRepo.EXPECT().Delete(sale).Return(nil)

		service := newTestService(saleRepo, time.Now())

		assert.NoError(t, service.Delete(context.Background(), "abc123", centralPrincipal))
	})
}

func TestService_List(t *testing.T) {
	now := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)

	sales := []*domain.Sale{
		{ID: "s1", Branch: "Miraflores", SoldAt: now.AddDate(0, 0, -1)},
		{ID: "s2", Branch: "San Isidro", SoldAt: now.AddDate(0, 0, -2)},
		{ID: "s3", Branch: "Miraflores", SoldAt: now.AddDate(0, 0, -3)},
	}

	t.Run("BRANCH enxerga apenas a própria sucursal, ignorando o filtro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		saleRepo.EXPECT().FindByDateRange(gomock.Any(), gomock.Any()).Return(sales, nil)

		service := newTestService(saleRepo, now)

		page, err := service.List(context.Background(), ListFilters{Branch: "San Isidro", Page: 0, Size: 10}, branchPrincipal)
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalElements)
		require.Len(t, page.Content, 2)
		// Ordenadas da mais recente para a mais antiga
		assert.Equal(t, "s1", page.Content[0].ID)
		assert.Equal(t, "s3", page.Content[1].ID)
	})

	t.Run("página além do total devolve conteúdo vazio com o total correto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		saleRepo.EXPECT().FindByDateRange(gomock.Any(), gomock.Any()).Return(sales, nil)

		service := newTestService(saleRepo, now)

		page, err := service.List(context.Background(), ListFilters{Page: 5, Size: 10}, centralPrincipal)
		require.NoError(t, err)
		assert.Empty(t, page.Content)
		assert.Equal(t, 3, page.TotalElements)
	})

	t.Run("intervalo invertido devolve erro de validação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)

		service := newTestService(saleRepo, now)

		from := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
		_, err := service.List(context.Background(), ListFilters{From: &from, To: &to, Size: 10}, centralPrincipal)
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})
}
