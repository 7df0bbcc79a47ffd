// Package authorizing concentra as regras de visibilidade por papel e
// sucursal. As comparações de sucursal ignoram caixa; nenhuma outra
// normalização é feita.
package authorizing

import (
	"strings"

	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

// CanAccessSale decide se o principal pode ler a venda. CENTRAL enxerga
// tudo; BRANCH apenas a própria sucursal.
func CanAccessSale(principal domain.Principal, sale *domain.Sale) bool {
	if principal.IsCentral() {
		return true
	}

	return strings.EqualFold(sale.Branch, principal.Branch)
}

// CanWriteForBranch decide se o principal pode registrar ou alterar vendas
// na sucursal alvo.
func CanWriteForBranch(principal domain.Principal, targetBranch string) bool {
	if principal.IsCentral() {
		return true
	}

	return strings.EqualFold(targetBranch, principal.Branch)
}

// CanRequestReportForBranch segue a mesma regra da escrita.
func CanRequestReportForBranch(principal domain.Principal, targetBranch string) bool {
	return CanWriteForBranch(principal, targetBranch)
}

// CanDelete restringe exclusões ao escritório central, independente da
// sucursal da venda.
func CanDelete(principal domain.Principal) bool {
	return principal.IsCentral()
}
