package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_CalculateAggregates(t *testing.T) {
	now := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)
	soldAt := time.Date(2026, 8, 18, 10, 0, 0, 0, time.UTC)

	sampleSales := []*domain.Sale{
		{SKU: "OREO-CLASSIC", Units: 10, Price: 1.99, Branch: "Miraflores", SoldAt: soldAt},
		{SKU: "OREO-DOUBLE", Units: 5, Price: 2.49, Branch: "San Isidro", SoldAt: soldAt},
		{SKU: "OREO-CLASSIC", Units: 15, Price: 1.99, Branch: "Miraflores", SoldAt: soldAt},
	}

	tests := []struct {
		name     string
		from     *time.Time
		to       *time.Time
		branch   *string
		setup    func(saleRepo *mocks.MockSaleRepository)
		validate func(t *testing.T, result *domain.SalesAggregates)
	}{
		{
			name: "sem filtro soma todas as vendas do intervalo",
			setup: func(saleRepo *mocks.MockSaleRepository) {
				expectedFrom := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
				expectedTo := time.Date(2026, 8, 20, 23, 59, 59, 999_000_000, time.UTC)
				saleRepo.EXPECT().
					FindByDateRange(expectedFrom, expectedTo).
					Return(sampleSales, nil)
			},
			validate: func(t *testing.T, result *domain.SalesAggregates) {
				assert.Equal(t, 30, result.TotalUnits)
				assert.Equal(t, 62.2, result.TotalRevenue)
				require.NotNil(t, result.TopSKU)
				assert.Equal(t, "OREO-CLASSIC", *result.TopSKU)
				require.NotNil(t, result.TopBranch)
				assert.Equal(t, "Miraflores", *result.TopBranch)
			},
		},
		{
			name:   "filtro de sucursal ignora caixa",
			branch: stringPtr("miraflores"),
			setup: func(saleRepo *mocks.MockSaleRepository) {
				saleRepo.EXPECT().
					FindByDateRange(gomock.Any(), gomock.Any()).
					Return(sampleSales, nil)
			},
			validate: func(t *testing.T, result *domain.SalesAggregates) {
				assert.Equal(t, 25, result.TotalUnits)
				assert.Equal(t, 49.75, result.TotalRevenue)
				require.NotNil(t, result.TopSKU)
				assert.Equal(t, "OREO-CLASSIC", *result.TopSKU)
				require.NotNil(t, result.TopBranch)
				assert.Equal(t, "Miraflores", *result.TopBranch)
			},
		},
		{
			name: "empate em unidades escolhe a chave lexicograficamente maior",
			setup: func(saleRepo *mocks.MockSaleRepository) {
				saleRepo.EXPECT().
					FindByDateRange(gomock.Any(), gomock.Any()).
					Return([]*domain.Sale{
						{SKU: "SKU-A", Units: 10, Price: 1.00, Branch: "Barranco", SoldAt: soldAt},
						{SKU: "SKU-B", Units: 10, Price: 1.00, Branch: "Callao", SoldAt: soldAt},
					}, nil)
			},
			validate: func(t *testing.T, result *domain.SalesAggregates) {
				require.NotNil(t, result.TopSKU)
				assert.Equal(t, "SKU-B", *result.TopSKU)
				require.NotNil(t, result.TopBranch)
				assert.Equal(t, "Callao", *result.TopBranch)
			},
		},
		{
			name: "datas explícitas são expandidas para início e fim do dia",
			from: timePtr(time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)),
			to:   timePtr(time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)),
			setup: func(saleRepo *mocks.MockSaleRepository) {
				expectedFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
				expectedTo := time.Date(2026, 8, 10, 23, 59, 59, 999_000_000, time.UTC)
				saleRepo.EXPECT().
					FindByDateRange(expectedFrom, expectedTo).
					Return(nil, nil)
			},
			validate: func(t *testing.T, result *domain.SalesAggregates) {
				assert.Equal(t, 0, result.TotalUnits)
			},
		},
		{
			name: "intervalo vazio devolve zeros e tops nulos",
			setup: func(saleRepo *mocks.MockSaleRepository) {
				saleRepo.EXPECT().
					FindByDateRange(gomock.Any(), gomock.Any()).
					Return([]*domain.Sale{}, nil)
			},
			validate: func(t *testing.T, result *domain.SalesAggregates) {
				assert.Equal(t, 0, result.TotalUnits)
				assert.Equal(t, 0.0, result.TotalRevenue)
				assert.Nil(t, result.TopSKU)
				assert.Nil(t, result.TopBranch)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			saleRepo := mocks.NewMockSaleRepository(ctrl)
			tt.setup(saleRepo)

			service := &Service{
				saleRepo: saleRepo,
				now:      func() time.Time { return now },
			}

			result, err := service.CalculateAggregates(tt.from, tt.to, tt.branch)
			require.NoError(t, err)
			tt.validate(t, result)
		})
	}
}

func TestService_CalculateAggregates_RevenueRounding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	saleRepo.EXPECT().
		FindByDateRange(gomock.Any(), gomock.Any()).
		Return([]*domain.Sale{
			{SKU: "SKU-A", Units: 3, Price: 0.335, Branch: "Miraflores"},
		}, nil)

	service := NewService(saleRepo)

	result, err := service.CalculateAggregates(nil, nil, nil)
	require.NoError(t, err)

	// 3 * 0.335 = 1.005, arredondado para cima na segunda casa
	assert.Equal(t, 1.01, result.TotalRevenue)
}

func stringPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}
