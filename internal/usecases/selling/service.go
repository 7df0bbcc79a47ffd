package selling

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authorizing"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

// SalesService aplica as regras de autorização sobre o repositório de vendas.
type SalesService interface {
	Create(ctx context.Context, request *domain.SaleRequest, principal domain.Principal) (*domain.SaleResponse, error)
	FindByID(ctx context.Context, id string, principal domain.Principal) (*domain.SaleResponse, error)
	Update(ctx context.Context, id string, request *domain.SaleRequest, principal domain.Principal) (*domain.SaleResponse, error)
	Delete(ctx context.Context, id string, principal domain.Principal) error
	List(ctx context.Context, filters ListFilters, principal domain.Principal) (*domain.SalePage, error)
}

// ListFilters são os parâmetros de consulta da listagem de vendas.
type ListFilters struct {
	From   *time.Time
	To     *time.Time
	Branch string
	Page   int
	Size   int
}

type Service struct {
	saleRepo repository.SaleRepository
	now      func() time.Time
}

func NewService(saleRepo repository.SaleRepository) SalesService {
	return &Service{
		saleRepo: saleRepo,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, request *domain.SaleRequest, principal domain.Principal) (*domain.SaleResponse, error) {
	if !authorizing.CanWriteForBranch(principal, request.Branch) {
		return nil, ErrBranchForbidden
	}

	if request.Units <= 0 || request.Price <= 0 {
		return nil, ErrInvalidSaleData
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		ID:        id,
		SKU:       request.SKU,
		Units:     request.Units,
		Price:     request.Price,
		Branch:    request.Branch,
		SoldAt:    request.SoldAt,
		CreatedBy: principal.Username,
	}

	saved, err := s.saleRepo.Save(sale)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sale_id": saved.ID,
		"branch":  saved.Branch,
	}).Info("Venda registrada")

	return saved.ToResponse(), nil
}

func (s *Service) FindByID(ctx context.Context, id string, principal domain.Principal) (*domain.SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}

	if !authorizing.CanAccessSale(principal, sale) {
		return nil, ErrSaleForbidden
	}

	return sale.ToResponse(), nil
}

// Update sobrescreve os campos de negócio da venda. BRANCH não pode mover a
// venda para outra sucursal; CENTRAL pode.
func (s *Service) Update(ctx context.Context, id string, request *domain.SaleRequest, principal domain.Principal) (*domain.SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}

	if !authorizing.CanAccessSale(principal, sale) {
		return nil, ErrSaleForbidden
	}

	if !principal.IsCentral() && !strings.EqualFold(sale.Branch, request.Branch) {
		return nil, ErrBranchChangeForbidden
	}

	if request.Units <= 0 || request.Price <= 0 {
		return nil, ErrInvalidSaleData
	}

	if principal.IsCentral() {
		sale.Branch = request.Branch
	}
	sale.SKU = request.SKU
	sale.Units = request.Units
	sale.Price = request.Price
	sale.SoldAt = request.SoldAt

	saved, err := s.saleRepo.UpdateInTransaction(ctx, sale)
	if err != nil {
		return nil, err
	}

	return saved.ToResponse(), nil
}

func (s *Service) Delete(ctx context.Context, id string, principal domain.Principal) error {
	if !authorizing.CanDelete(principal) {
		return ErrDeleteNotAllowed
	}

	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return ErrSaleNotFound
	}

	if err := s.saleRepo.Delete(sale); err != nil {
		return err
	}

	logrus.WithField("sale_id", id).Info("Venda excluída")

	return nil
}

// List busca o intervalo no repositório e aplica filtro de sucursal,
// ordenação por data decrescente e paginação em memória. BRANCH sempre
// enxerga apenas a própria sucursal, ignorando o filtro recebido.
func (s *Service) List(ctx context.Context, filters ListFilters, principal domain.Principal) (*domain.SalePage, error) {
	dateRange, err := domain.NewDateRange(filters.From, filters.To, s.now())
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.FindByDateRange(dateRange.From, dateRange.To)
	if err != nil {
		return nil, err
	}

	branchFilter := filters.Branch
	if !principal.IsCentral() {
		branchFilter = principal.Branch
	}

	if branchFilter != "" {
		filtered := make([]*domain.Sale, 0, len(sales))
		for _, sale := range sales {
			if strings.EqualFold(sale.Branch, branchFilter) {
				filtered = append(filtered, sale)
			}
		}
		sales = filtered
	}

	sort.Slice(sales, func(i, j int) bool {
		if !sales[i].SoldAt.Equal(sales[j].SoldAt) {
			return sales[i].SoldAt.After(sales[j].SoldAt)
		}
		return sales[i].ID > sales[j].ID
	})

	total := len(sales)
	start := filters.Page * filters.Size
	end := start + filters.Size
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}

	content := make([]*domain.SaleResponse, 0, end-start)
	for _, sale := range sales[start:end] {
		content = append(content, sale.ToResponse())
	}

	return &domain.SalePage{
		Content:       content,
		Page:          filters.Page,
		Size:          filters.Size,
		TotalElements: total,
	}, nil
}
