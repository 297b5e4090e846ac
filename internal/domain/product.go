package domain

import "github.com/shopspring/decimal"

// ProductStatus is owned by the product service. The stock subsystem
// only ever drives the ACTIVE/OUT_OF_STOCK edge.
type ProductStatus string

const (
	ProductActive       ProductStatus = "ACTIVE"
	ProductOutOfStock   ProductStatus = "OUT_OF_STOCK"
	ProductDiscontinued ProductStatus = "DISCONTINUED"
	ProductDeleted      ProductStatus = "DELETED"
)

// Product is the read model served by the product service.
type Product struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Status    ProductStatus   `json:"status"`
}
