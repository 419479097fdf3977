package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP de ítems de inventario (protegido).
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ítem de inventario (o fijar su cantidad y umbrales)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "product_id, warehouse_id, quantity, minimum_level, maximum_level"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	item, err := h.uc.CreateItem(c.UserContext(), inventory.CreateItemInput{
		ProductID:    in.ProductID,
		WarehouseID:  in.WarehouseID,
		Quantity:     in.Quantity,
		MinimumLevel: in.MinimumLevel,
		MaximumLevel: in.MaximumLevel,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInventoryItemResponse(item))
}

// List godoc
// @Summary      Listar ítems de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryItemListResponse
// @Router       /api/v1/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListAll(c.UserContext())
	return h.list(c, items, err)
}

// GetByID godoc
// @Summary      Obtener ítem de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryItemResponse(item))
}

// SetQuantity godoc
// @Summary      Fijar cantidad absoluta
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId    path  string  true  "ID del producto"
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Param        body         body  dto.SetQuantityRequest  true  "quantity"
// @Success      200          {object}  dto.InventoryItemResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/{productId}/{warehouseId} [put]
func (h *InventoryHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	item, err := h.uc.SetQuantity(c.UserContext(), c.Params("productId"), c.Params("warehouseId"), in.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryItemResponse(item))
}

// Adjust godoc
// @Summary      Ajustar cantidad (delta positivo o negativo)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId    path  string  true  "ID del producto"
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Param        body         body  dto.AdjustQuantityRequest  true  "adjustment"
// @Success      200          {object}  dto.InventoryItemResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Failure      409          {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/{productId}/{warehouseId}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	item, err := h.uc.Adjust(c.UserContext(), c.Params("productId"), c.Params("warehouseId"), in.Adjustment)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryItemResponse(item))
}

// Quantity godoc
// @Summary      Cantidad actual (0 si no hay ítem)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId    path  string  true  "ID del producto"
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Success      200          {object}  dto.QuantityResponse
// @Router       /api/v1/inventory/{productId}/{warehouseId}/quantity [get]
func (h *InventoryHandler) Quantity(c *fiber.Ctx) error {
	productID, warehouseID := c.Params("productId"), c.Params("warehouseId")
	qty, err := h.uc.GetQuantity(c.UserContext(), productID, warehouseID)
	if err != nil {
		return err
	}
	return c.JSON(dto.QuantityResponse{ProductID: productID, WarehouseID: warehouseID, Quantity: qty})
}

// ByWarehouse godoc
// @Summary      Ítems de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Success      200          {object}  dto.InventoryItemListResponse
// @Router       /api/v1/inventory/warehouse/{warehouseId} [get]
func (h *InventoryHandler) ByWarehouse(c *fiber.Ctx) error {
	items, err := h.uc.ListByWarehouse(c.UserContext(), c.Params("warehouseId"))
	return h.list(c, items, err)
}

// ByProduct godoc
// @Summary      Ítems de un producto en todas las bodegas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  dto.InventoryItemListResponse
// @Router       /api/v1/inventory/product/{productId} [get]
func (h *InventoryHandler) ByProduct(c *fiber.Ctx) error {
	items, err := h.uc.ListByProduct(c.UserContext(), c.Params("productId"))
	return h.list(c, items, err)
}

// LowStock godoc
// @Summary      Ítems con cantidad menor o igual al umbral (genera alertas)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  number  false  "Umbral"  default(10)
// @Success      200        {object}  dto.InventoryItemListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	threshold := decimal.NewFromInt(10)
	if raw := c.Query("threshold"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return badRequest(c, "INVALID_PARAM", "threshold debe ser numérico")
		}
		threshold = v
	}
	items, err := h.uc.CheckLowStock(c.UserContext(), threshold)
	return h.list(c, items, err)
}

// BelowMinimum godoc
// @Summary      Ítems bajo su nivel mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryItemListResponse
// @Router       /api/v1/inventory/below-minimum [get]
func (h *InventoryHandler) BelowMinimum(c *fiber.Ctx) error {
	items, err := h.uc.CheckBelowMinimum(c.UserContext())
	return h.list(c, items, err)
}

// AboveMaximum godoc
// @Summary      Ítems sobre su nivel máximo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryItemListResponse
// @Router       /api/v1/inventory/above-maximum [get]
func (h *InventoryHandler) AboveMaximum(c *fiber.Ctx) error {
	items, err := h.uc.CheckAboveMaximum(c.UserContext())
	return h.list(c, items, err)
}

// Replenishment godoc
// @Summary      Sugerencias de reposición para ítems bajo mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/v1/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	suggestions, err := h.uc.Replenishment(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.ReplenishmentSuggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, dto.ReplenishmentSuggestionDTO{
			ItemID:       s.Item.ID,
			ProductID:    s.Item.ProductID,
			WarehouseID:  s.Item.WarehouseID,
			CurrentStock: s.Item.Quantity,
			MinimumLevel: *s.Item.MinimumLevel,
			TargetLevel:  s.TargetLevel,
			SuggestedQty: s.SuggestedQty,
			Priority:     s.Priority,
		})
	}
	return c.JSON(out)
}

// UpdateLevels godoc
// @Summary      Fijar niveles mínimo y máximo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.UpdateLevelsRequest  true  "minimum_level, maximum_level (null = sin umbral)"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/{id}/levels [put]
func (h *InventoryHandler) UpdateLevels(c *fiber.Ctx) error {
	var in dto.UpdateLevelsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	item, err := h.uc.UpdateLevels(c.UserContext(), c.Params("id"), in.MinimumLevel, in.MaximumLevel)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryItemResponse(item))
}

// Delete godoc
// @Summary      Eliminar ítem de inventario
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *InventoryHandler) list(c *fiber.Ctx, items []*entity.InventoryItem, err error) error {
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryItemList(items))
}
