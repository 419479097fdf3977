package dto

import "github.com/jhoicas/warehouse-api/internal/domain/entity"

// NewWarehouseResponse convierte la entidad a su salida HTTP.
func NewWarehouseResponse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:          w.ID,
		Name:        w.Name,
		Location:    w.Location,
		Capacity:    w.Capacity,
		Description: w.Description,
		Active:      w.Active,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func NewInventoryItemResponse(it *entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:           it.ID,
		ProductID:    it.ProductID,
		WarehouseID:  it.WarehouseID,
		Quantity:     it.Quantity,
		MinimumLevel: it.MinimumLevel,
		MaximumLevel: it.MaximumLevel,
		Status:       string(it.Status()),
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

func NewInventoryItemList(list []*entity.InventoryItem) InventoryItemListResponse {
	items := make([]InventoryItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, NewInventoryItemResponse(it))
	}
	return InventoryItemListResponse{Items: items, Meta: ListMeta{Total: len(items)}}
}

func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                     t.ID,
		Type:                   string(t.Type),
		TypeDescription:        t.Type.Description(),
		ProductID:              t.ProductID,
		SourceWarehouseID:      t.SourceWarehouseID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		Quantity:               t.Quantity,
		Timestamp:              t.Timestamp,
		Description:            t.Description,
		UserID:                 t.UserID,
		ReferenceNumber:        t.ReferenceNumber,
	}
}

func NewTransactionList(list []*entity.Transaction) TransactionListResponse {
	items := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, NewTransactionResponse(t))
	}
	return TransactionListResponse{Items: items, Meta: ListMeta{Total: len(items)}}
}
