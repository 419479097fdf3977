package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// TransactionHandler registra y consulta movimientos de stock (protegido).
type TransactionHandler struct {
	uc *inventory.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *inventory.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento (RECEIPT, ISSUE, TRANSFER)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "type, product_id, source/destination, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	txType, ok := entity.ParseTransactionType(in.Type)
	if !ok {
		return domain.NewValidationError("tipo de movimiento inválido: use RECEIPT, ISSUE o TRANSFER")
	}
	t, err := h.uc.Create(c.UserContext(), inventory.CreateTransactionInput{
		Type:                   txType,
		ProductID:              in.ProductID,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		Quantity:               in.Quantity,
		Description:            in.Description,
		ReferenceNumber:        in.ReferenceNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransactionResponse(t))
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTransactionResponse(t))
}

// List godoc
// @Summary      Listar movimientos (más recientes primero)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/v1/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.UserContext())
	return h.list(c, list, err)
}

// ByPeriod godoc
// @Summary      Movimientos en un período
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "Inicio (RFC3339)"
// @Param        end    query  string  true  "Fin (RFC3339)"
// @Success      200    {object}  dto.TransactionListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/v1/transactions/period [get]
func (h *TransactionHandler) ByPeriod(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c, true)
	if err != nil {
		return badRequest(c, "INVALID_PARAM", err.Error())
	}
	list, err := h.uc.ListByPeriod(c.UserContext(), start, end)
	return h.list(c, list, err)
}

// ByProduct godoc
// @Summary      Movimientos de un producto
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  dto.TransactionListResponse
// @Router       /api/v1/transactions/product/{productId} [get]
func (h *TransactionHandler) ByProduct(c *fiber.Ctx) error {
	list, err := h.uc.ListByProduct(c.UserContext(), c.Params("productId"))
	return h.list(c, list, err)
}

// ByWarehouse godoc
// @Summary      Movimientos donde la bodega es origen o destino
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Success      200          {object}  dto.TransactionListResponse
// @Router       /api/v1/transactions/warehouse/{warehouseId} [get]
func (h *TransactionHandler) ByWarehouse(c *fiber.Ctx) error {
	list, err := h.uc.ListByWarehouse(c.UserContext(), c.Params("warehouseId"))
	return h.list(c, list, err)
}

func (h *TransactionHandler) list(c *fiber.Ctx, list []*entity.Transaction, err error) error {
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTransactionList(list))
}
