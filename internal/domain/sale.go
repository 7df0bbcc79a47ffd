package domain

import (
	"time"
)

// Sale representa uma venda registrada por uma sucursal.
type Sale struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Units     int       `json:"units"`
	Price     float64   `json:"price"`
	Branch    string    `json:"branch"`
	SoldAt    time.Time `json:"sold_at"`
	CreatedBy string    `json:"created_by"`
}

type SaleRequest struct {
	SKU    string    `json:"sku"`
	Units  int       `json:"units"`
	Price  float64   `json:"price"`
	Branch string    `json:"branch"`
	SoldAt time.Time `json:"sold_at"`
}

type SaleResponse struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Units     int       `json:"units"`
	Price     float64   `json:"price"`
	Branch    string    `json:"branch"`
	SoldAt    time.Time `json:"sold_at"`
	CreatedBy string    `json:"created_by"`
}

// ToResponse projeta a venda no formato exposto pela API.
func (s *Sale) ToResponse() *SaleResponse {
	return &SaleResponse{
		ID:        s.ID,
		SKU:       s.SKU,
		Units:     s.Units,
		Price:     s.Price,
		Branch:    s.Branch,
		SoldAt:    s.SoldAt,
		CreatedBy: s.CreatedBy,
	}
}

// SalePage é uma página de vendas com o total antes da paginação.
type SalePage struct {
	Content       []*SaleResponse `json:"content"`
	Page          int             `json:"page"`
	Size          int             `json:"size"`
	TotalElements int             `json:"total_elements"`
}
