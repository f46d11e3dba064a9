package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StockStatus clasificación derivada del registro de stock.
// Se recalcula tras cada mutación; nunca la fija el caller directamente,
// salvo la transición administrativa a DISCONTINUED.
type StockStatus string

const (
	StatusAvailable    StockStatus = "AVAILABLE"
	StatusLowStock     StockStatus = "LOW_STOCK"
	StatusOutOfStock   StockStatus = "OUT_OF_STOCK"
	StatusDiscontinued StockStatus = "DISCONTINUED"
)

// StockRecord es el libro mayor de unidades de un artículo vendible
// (producto o variante): cuántas unidades hay físicamente disponibles y
// cuántas están ya comprometidas a pedidos aceptados pero no despachados.
// Existe exactamente un registro por ItemID (constraint único en la tabla).
//
// Las mutaciones viven en la entidad para que ningún caller pueda saltarse
// el recálculo de estado ni dejar cantidades negativas.
type StockRecord struct {
	ID         string
	SupplierID string
	ItemID     string
	Available  int
	Reserved   int
	// ReorderLevel nil = sin umbral configurado (distinto de umbral cero).
	ReorderLevel  *int
	ReorderQty    *int
	Location      string
	LastRestocked *time.Time
	LastUpdated   time.Time
	Status        StockStatus
}

// NewStockRecord crea el registro al aprovisionar un artículo vendible.
// Arranca en cero, por lo tanto OUT_OF_STOCK.
func NewStockRecord(supplierID, itemID string) *StockRecord {
	now := time.Now().UTC()
	return &StockRecord{
		ID:          uuid.New().String(),
		SupplierID:  supplierID,
		ItemID:      itemID,
		Available:   0,
		Reserved:    0,
		LastUpdated: now,
		Status:      StatusOutOfStock,
	}
}

// HasSufficientStock indica si hay cantidad disponible suficiente.
// Pregunta independiente de IsAvailableForOrder: un artículo DISCONTINUED
// puede tener stock físico de sobra y aun así no ser pedible.
func (s *StockRecord) HasSufficientStock(quantity int) bool {
	return quantity > 0 && s.Available >= quantity
}

// Reserve mueve quantity unidades de disponible a reservado (pedido aceptado).
// Devuelve false sin mutar si quantity no es positiva o no hay disponible.
func (s *StockRecord) Reserve(quantity int) bool {
	if quantity <= 0 {
		return false
	}
	if !s.HasSufficientStock(quantity) {
		return false
	}
	s.Available -= quantity
	s.Reserved += quantity
	s.LastUpdated = time.Now().UTC()
	s.RefreshStatus()
	return true
}

// Release devuelve quantity unidades de reservado a disponible
// (pedido cancelado antes de despachar).
func (s *StockRecord) Release(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("la cantidad a liberar debe ser positiva")
	}
	if s.Reserved < quantity {
		return fmt.Errorf("reservado %d, solicitado %d", s.Reserved, quantity)
	}
	s.Reserved -= quantity
	s.Available += quantity
	s.LastUpdated = time.Now().UTC()
	s.RefreshStatus()
	return nil
}

// Deduct consume quantity unidades reservadas (pedido despachado, las
// unidades salen de la bodega). Nunca toca Available: esas unidades ya
// salieron de "disponible" al reservarse.
func (s *StockRecord) Deduct(quantity int) bool {
	if quantity <= 0 {
		return false
	}
	if s.Reserved < quantity {
		return false
	}
	s.Reserved -= quantity
	s.LastUpdated = time.Now().UTC()
	s.RefreshStatus()
	return true
}

// Restock suma quantity unidades al disponible y marca LastRestocked.
func (s *StockRecord) Restock(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("la cantidad de reposición debe ser positiva")
	}
	s.Available += quantity
	now := time.Now().UTC()
	s.LastRestocked = &now
	s.LastUpdated = now
	s.RefreshStatus()
	return nil
}

// TotalStock cantidad total poseída: disponible + reservado.
// Las unidades reservadas siguen siendo inventario propio, solo comprometido.
func (s *StockRecord) TotalStock() int {
	return s.Available + s.Reserved
}

// NeedsReorder indica si el stock total cayó al umbral de reposición.
func (s *StockRecord) NeedsReorder() bool {
	if s.Status == StatusDiscontinued {
		return false
	}
	if s.ReorderLevel == nil {
		return false
	}
	return s.TotalStock() <= *s.ReorderLevel
}

// IsAvailableForOrder indica si el artículo acepta pedidos.
// OUT_OF_STOCK y DISCONTINUED no son pedibles; LOW_STOCK sí.
func (s *StockRecord) IsAvailableForOrder() bool {
	return s.Status == StatusAvailable || s.Status == StatusLowStock
}

// Discontinue marca el artículo como descontinuado. Estado pegajoso:
// RefreshStatus no lo pisa, hay que llamar Reactivate explícitamente.
func (s *StockRecord) Discontinue() {
	s.Status = StatusDiscontinued
	s.LastUpdated = time.Now().UTC()
}

// Reactivate saca el artículo de DISCONTINUED y recalcula el estado
// derivado de las cantidades actuales.
func (s *StockRecord) Reactivate() {
	if s.Status != StatusDiscontinued {
		return
	}
	s.Status = StatusOutOfStock
	s.LastUpdated = time.Now().UTC()
	s.RefreshStatus()
}

// RefreshStatus recalcula el estado como función pura de las cantidades y
// el umbral. DISCONTINUED se respeta (no se auto-actualiza):
//   - Available == 0                      → OUT_OF_STOCK
//   - total <= ReorderLevel (si existe)   → LOW_STOCK
//   - en otro caso                        → AVAILABLE
func (s *StockRecord) RefreshStatus() {
	if s.Status == StatusDiscontinued {
		return
	}
	switch {
	case s.Available == 0:
		s.Status = StatusOutOfStock
	case s.ReorderLevel != nil && s.TotalStock() <= *s.ReorderLevel:
		s.Status = StatusLowStock
	default:
		s.Status = StatusAvailable
	}
}

// SuggestedOrderQty cantidad sugerida de pedido para reposición:
// ReorderQty si está configurado, si no el déficit contra el umbral.
func (s *StockRecord) SuggestedOrderQty() int {
	if s.ReorderQty != nil && *s.ReorderQty > 0 {
		return *s.ReorderQty
	}
	if s.ReorderLevel == nil {
		return 0
	}
	deficit := *s.ReorderLevel - s.TotalStock()
	if deficit < 0 {
		return 0
	}
	return deficit
}
