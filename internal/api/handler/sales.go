package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/selling"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func CreateSale(service selling.SalesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.SaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		sale, err := service.Create(r.Context(), &req, principal)
		if err != nil {
			handleSaleError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, sale)
	}
}

func GetSale(service selling.SalesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromRequest(w, r)
		if !ok {
			return
		}

		saleID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		sale, err := service.FindByID(r.Context(), saleID, principal)
		if err != nil {
			handleSaleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sale)
	}
}

func UpdateSale(service selling.SalesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromRequest(w, r)
		if !ok {
			return
		}

		saleID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req domain.SaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		sale, err := service.Update(r.Context(), saleID, &req, principal)
		if err != nil {
			handleSaleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sale)
	}
}

func DeleteSale(service selling.SalesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromRequest(w, r)
		if !ok {
			return
		}

		saleID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Delete(r.Context(), saleID, principal); err != nil {
			handleSaleError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListSales aceita os filtros from, to, branch, page e size via query string.
func ListSales(service selling.SalesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromRequest(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()

		from, err := utils.ParseDate(query.Get("from"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		to, err := utils.ParseDate(query.Get("to"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		page := parsePositiveInt(query.Get("page"), 0)
		size := parsePositiveInt(query.Get("size"), defaultPageSize)
		if size > maxPageSize {
			size = maxPageSize
		}

		filters := selling.ListFilters{
			From:   from,
			To:     to,
			Branch: query.Get("branch"),
			Page:   page,
			Size:   size,
		}

		salesPage, err := service.List(r.Context(), filters, principal)
		if err != nil {
			handleSaleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, salesPage)
	}
}

func parsePositiveInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}

	return parsed
}

func handleSaleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, selling.ErrSaleNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSaleNotFound, "Venda não encontrada", nil)

	case errors.Is(err, selling.ErrSaleForbidden):
		apiErrors.WriteError(w, apiErrors.ErrSaleForbidden, "Sem permissão sobre esta venda", nil)

	case errors.Is(err, selling.ErrBranchForbidden):
		apiErrors.WriteError(w, apiErrors.ErrBranchForbidden, "Não pode registrar vendas para outra sucursal", nil)

	case errors.Is(err, selling.ErrBranchChangeForbidden):
		apiErrors.WriteError(w, apiErrors.ErrBranchForbidden, "Não pode mudar a sucursal da venda", nil)

	case errors.Is(err, selling.ErrDeleteNotAllowed):
		apiErrors.WriteError(w, apiErrors.ErrDeleteNotAllowed, "Somente o escritório central pode excluir vendas", nil)

	case errors.Is(err, selling.ErrInvalidSaleData):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Unidades e preço devem ser maiores que zero", nil)

	case errors.Is(err, domain.ErrInvalidDateRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, "Data inicial não pode ser posterior à final", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar a requisição", nil)
	}
}
