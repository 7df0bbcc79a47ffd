// Package aggregating calcula os totais e as classificações "top" sobre um
// conjunto de vendas delimitado por datas.
package aggregating

import (
	"strings"
	"time"

	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

// Aggregator é o contrato consumido pelo pipeline de relatórios.
type Aggregator interface {
	CalculateAggregates(from, to *time.Time, branch *string) (*domain.SalesAggregates, error)
}

type Service struct {
	saleRepo repository.SaleRepository
	now      func() time.Time
}

func NewService(saleRepo repository.SaleRepository) *Service {
	return &Service{
		saleRepo: saleRepo,
		now:      time.Now,
	}
}

// CalculateAggregates resolve o intervalo efetivo (janela móvel de 7 dias
// quando 'from' está ausente, hoje quando 'to' está ausente), busca as vendas
// e agrega em memória.
func (s *Service) CalculateAggregates(from, to *time.Time, branch *string) (*domain.SalesAggregates, error) {
	now := s.now()

	start := domain.StartOfDay(now.AddDate(0, 0, -6))
	if from != nil {
		start = domain.StartOfDay(*from)
	}

	end := domain.EndOfDay(now)
	if to != nil {
		end = domain.EndOfDay(*to)
	}

	sales, err := s.saleRepo.FindByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	if branch != nil {
		filtered := make([]*domain.Sale, 0, len(sales))
		for _, sale := range sales {
			if strings.EqualFold(sale.Branch, *branch) {
				filtered = append(filtered, sale)
			}
		}
		sales = filtered
	}

	totalUnits := 0
	totalRevenue := 0.0
	for _, sale := range sales {
		totalUnits += sale.Units
		totalRevenue += float64(sale.Units) * sale.Price
	}

	return &domain.SalesAggregates{
		TotalUnits:   totalUnits,
		TotalRevenue: utils.RoundWithTwoDecimalPlace(totalRevenue),
		TopSKU:       topValue(sales, func(s *domain.Sale) string { return s.SKU }),
		TopBranch:    topValue(sales, func(s *domain.Sale) string { return s.Branch }),
	}, nil
}

// topValue agrupa as vendas pela chave, soma as unidades e devolve a chave
// com o maior total. Empates são resolvidos pela chave lexicograficamente
// maior; a mesma regra vale para SKU e sucursal.
func topValue(sales []*domain.Sale, classifier func(*domain.Sale) string) *string {
	if len(sales) == 0 {
		return nil
	}

	totals := make(map[string]int, len(sales))
	for _, sale := range sales {
		totals[classifier(sale)] += sale.Units
	}

	var top string
	found := false
	for key, units := range totals {
		if !found || units > totals[top] || (units == totals[top] && key > top) {
			top = key
			found = true
		}
	}

	return &top
}
