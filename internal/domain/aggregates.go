package domain

// SalesAggregates são os totais calculados sobre um conjunto de vendas.
// Nunca é persistido; é recalculado a cada solicitação.
type SalesAggregates struct {
	TotalUnits   int     `json:"total_units"`
	TotalRevenue float64 `json:"total_revenue"`
	TopSKU       *string `json:"top_sku"`
	TopBranch    *string `json:"top_branch"`
}
