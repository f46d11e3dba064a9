package dto

import "time"

// ReserveStockRequest body para POST /api/stock/reserve (también release/deduct/restock).
type ReserveStockRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// AdjustStockRequest body para PUT /api/stock/:itemId (ajuste manual).
// Los campos opcionales en nil no se modifican.
type AdjustStockRequest struct {
	AvailableQuantity *int    `json:"available_quantity"`
	ReorderLevel      *int    `json:"reorder_level,omitempty"`
	ReorderQuantity   *int    `json:"reorder_quantity,omitempty"`
	WarehouseLocation *string `json:"warehouse_location,omitempty"`
}

// ProvisionStockRequest body para POST /api/stock (alta del registro).
type ProvisionStockRequest struct {
	SupplierID string `json:"supplier_id"`
	ItemID     string `json:"item_id"`
}

// StockRecordResponse representación HTTP del registro de stock.
type StockRecordResponse struct {
	ID                string     `json:"id"`
	SupplierID        string     `json:"supplier_id"`
	ItemID            string     `json:"item_id"`
	AvailableQuantity int        `json:"available_quantity"`
	ReservedQuantity  int        `json:"reserved_quantity"`
	TotalStock        int        `json:"total_stock"`
	ReorderLevel      *int       `json:"reorder_level,omitempty"`
	ReorderQuantity   *int       `json:"reorder_quantity,omitempty"`
	WarehouseLocation string     `json:"warehouse_location,omitempty"`
	LastRestocked     *time.Time `json:"last_restocked,omitempty"`
	LastUpdated       time.Time  `json:"last_updated"`
	Status            string     `json:"status"`
}

// AvailabilityResponse respuesta de GET /api/stock/:itemId/availability.
// available y sufficient_stock son independientes: DISCONTINUED con stock
// físico responde sufficient_stock=true y available=false.
type AvailabilityResponse struct {
	Available         bool   `json:"available"`
	SufficientStock   bool   `json:"sufficient_stock"`
	AvailableQuantity int    `json:"available_quantity"`
	Status            string `json:"status"`
}

// ReplenishmentSuggestionDTO una sugerencia de reposición para un artículo
// bajo su umbral de reorden.
type ReplenishmentSuggestionDTO struct {
	ItemID            string `json:"item_id"`
	SupplierID        string `json:"supplier_id"`
	AvailableQty      int    `json:"available_quantity"`
	ReservedQty       int    `json:"reserved_quantity"`
	TotalStock        int    `json:"total_stock"`
	ReorderLevel      int    `json:"reorder_level"`
	SuggestedOrderQty int    `json:"suggested_order_qty"`
	Location          string `json:"warehouse_location,omitempty"`
	Priority          int    `json:"priority"` // 1 = más urgente
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
