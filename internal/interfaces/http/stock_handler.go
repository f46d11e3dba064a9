package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/marketplace-stock/internal/application/dto"
	"github.com/tu-usuario/marketplace-stock/internal/application/stock"
	"github.com/tu-usuario/marketplace-stock/internal/domain"
	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del libro de stock (protegido).
type StockHandler struct {
	control       *stock.ControlUseCase
	availability  *stock.AvailabilityUseCase
	provision     *stock.ProvisionUseCase
	replenishment *stock.ReplenishmentUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	control *stock.ControlUseCase,
	availability *stock.AvailabilityUseCase,
	provision *stock.ProvisionUseCase,
	replenishment *stock.ReplenishmentUseCase,
) *StockHandler {
	return &StockHandler{
		control:       control,
		availability:  availability,
		provision:     provision,
		replenishment: replenishment,
	}
}

// Provision godoc
// @Summary      Crear registro de stock para un artículo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProvisionStockRequest  true  "supplier_id, item_id"
// @Success      201   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Provision(c *fiber.Ctx) error {
	var in dto.ProvisionStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.provision.Provision(c.Context(), in.SupplierID, in.ItemID)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(record))
}

// Reserve godoc
// @Summary      Reservar stock para un pedido aceptado
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "item_id, quantity"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/reserve [post]
func (h *StockHandler) Reserve(c *fiber.Ctx) error {
	in, err := parseQuantityBody(c)
	if err != nil {
		return domainError(c, err)
	}
	if err := h.control.Reserve(c.Context(), in.ItemID, in.Quantity); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock reservado"})
}

// Release godoc
// @Summary      Liberar stock reservado (pedido cancelado)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "item_id, quantity"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/release [post]
func (h *StockHandler) Release(c *fiber.Ctx) error {
	in, err := parseQuantityBody(c)
	if err != nil {
		return domainError(c, err)
	}
	if err := h.control.Release(c.Context(), in.ItemID, in.Quantity); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reserva liberada"})
}

// Deduct godoc
// @Summary      Descontar stock reservado (pedido despachado)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "item_id, quantity"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/deduct [post]
func (h *StockHandler) Deduct(c *fiber.Ctx) error {
	in, err := parseQuantityBody(c)
	if err != nil {
		return domainError(c, err)
	}
	if err := h.control.Deduct(c.Context(), in.ItemID, in.Quantity); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock descontado"})
}

// Restock godoc
// @Summary      Reponer stock (llegada de mercancía)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "item_id, quantity"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/restock [post]
func (h *StockHandler) Restock(c *fiber.Ctx) error {
	in, err := parseQuantityBody(c)
	if err != nil {
		return domainError(c, err)
	}
	record, err := h.control.Restock(c.Context(), in.ItemID, in.Quantity)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toResponse(record))
}

// Adjust godoc
// @Summary      Ajuste manual de stock (administrativo)
// @Description  Sobrescribe disponible, umbrales y bodega. Rechaza si el
//               disponible propuesto queda por debajo de lo reservado.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        itemId  path  string  true  "ID del artículo"
// @Param        body    body  dto.AdjustStockRequest  true  "available_quantity y campos opcionales"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/{itemId} [put]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	itemID := c.Params("itemId")
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.AvailableQuantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "available_quantity es obligatorio"})
	}
	record, err := h.control.Adjust(c.Context(), stock.AdjustInput{
		ItemID:       itemID,
		Available:    *in.AvailableQuantity,
		ReorderLevel: in.ReorderLevel,
		ReorderQty:   in.ReorderQuantity,
		Location:     in.WarehouseLocation,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toResponse(record))
}

// CheckAvailability godoc
// @Summary      Consultar disponibilidad de un artículo
// @Description  available y sufficient_stock son independientes: un artículo
//               descontinuado con stock físico responde sufficient_stock=true
//               y available=false.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        itemId    path   string  true   "ID del artículo"
// @Param        quantity  query  int     false  "Cantidad solicitada"
// @Success      200   {object}  dto.AvailabilityResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{itemId}/availability [get]
func (h *StockHandler) CheckAvailability(c *fiber.Ctx) error {
	itemID := c.Params("itemId")
	quantity, _ := strconv.Atoi(c.Query("quantity", "0"))
	result, err := h.availability.Check(c.Context(), itemID, quantity)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{
		Available:         result.Available,
		SufficientStock:   result.SufficientStock,
		AvailableQuantity: result.AvailableQty,
		Status:            string(result.Status),
	})
}

// Get godoc
// @Summary      Obtener el registro de stock de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "ID del artículo"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{itemId} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	record, err := h.availability.Get(c.Context(), c.Params("itemId"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toResponse(record))
}

// ListBySupplier godoc
// @Summary      Listar registros de stock del proveedor autenticado
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  map[string]interface{}
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) ListBySupplier(c *fiber.Ctx) error {
	supplierID := GetSupplierID(c)
	if supplierID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	records, err := h.availability.ListBySupplier(c.Context(), supplierID)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.StockRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "records": out})
}

// Discontinue godoc
// @Summary      Descontinuar un artículo (estado pegajoso)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "ID del artículo"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{itemId}/discontinue [post]
func (h *StockHandler) Discontinue(c *fiber.Ctx) error {
	if err := h.control.Discontinue(c.Context(), c.Params("itemId")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "artículo descontinuado"})
}

// Reactivate godoc
// @Summary      Reactivar un artículo descontinuado
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "ID del artículo"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{itemId}/reactivate [post]
func (h *StockHandler) Reactivate(c *fiber.Ctx) error {
	if err := h.control.Reactivate(c.Context(), c.Params("itemId")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "artículo reactivado"})
}

// Remove godoc
// @Summary      Eliminar el registro de stock (cascada del catálogo)
// @Tags         stock
// @Security     Bearer
// @Param        itemId  path  string  true  "ID del artículo"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{itemId} [delete]
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	if err := h.provision.Remove(c.Context(), c.Params("itemId")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Artículos con stock total bajo su umbral de reorden, mayor
//               déficit primero, con la cantidad sugerida de pedido.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  false  "Filtrar por proveedor. Vacío = todos."
// @Success      200   {object}  map[string]interface{}
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stock/replenishment [get]
func (h *StockHandler) ReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.List(c.Context(), c.Query("supplier_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "replenishments": list})
}

// ReplenishmentPDF godoc
// @Summary      Informe de reposición en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        supplier_id  query  string  false  "Filtrar por proveedor. Vacío = todos."
// @Success      200
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stock/replenishment/pdf [get]
func (h *StockHandler) ReplenishmentPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.replenishment.ExportPDF(c.Context(), c.Query("supplier_id"))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="replenishment.pdf"`)
	return c.Send(pdfBytes)
}

// parseQuantityBody parsea el body común item_id + quantity de las mutaciones.
func parseQuantityBody(c *fiber.Ctx) (dto.ReserveStockRequest, error) {
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return in, domain.ErrInvalidInput
	}
	return in, nil
}

func toResponse(r *entity.StockRecord) dto.StockRecordResponse {
	return dto.StockRecordResponse{
		ID:                r.ID,
		SupplierID:        r.SupplierID,
		ItemID:            r.ItemID,
		AvailableQuantity: r.Available,
		ReservedQuantity:  r.Reserved,
		TotalStock:        r.TotalStock(),
		ReorderLevel:      r.ReorderLevel,
		ReorderQuantity:   r.ReorderQty,
		WarehouseLocation: r.Location,
		LastRestocked:     r.LastRestocked,
		LastUpdated:       r.LastUpdated,
		Status:            string(r.Status),
	}
}
