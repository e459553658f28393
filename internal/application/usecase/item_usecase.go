package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/tu-usuario/almacen-stock/internal/application/dto"
	"github.com/tu-usuario/almacen-stock/internal/domain"
	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
	"github.com/tu-usuario/almacen-stock/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para el catálogo de artículos.
// Amount se maneja exclusivamente vía movimientos de stock; aquí solo viaja
// como stock inicial en el alta.
type ItemUseCase struct {
	store repository.ItemStore
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(store repository.ItemStore) *ItemUseCase {
	return &ItemUseCase{store: store}
}

// Create da de alta un artículo. El ID lo aporta el caller y debe ser único.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.ID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount < 0 || in.MinAmount < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.store.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.Item{
		ID:        in.ID,
		EAN:       in.EAN,
		Name:      in.Name,
		Shelf:     in.Shelf,
		Box:       in.Box,
		Amount:    in.Amount,
		MinAmount: in.MinAmount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.store.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo. Devuelve ErrItemNotFound si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return toItemResponse(item), nil
}

// List devuelve el catálogo completo.
func (uc *ItemUseCase) List(ctx context.Context) ([]*dto.ItemResponse, error) {
	items, err := uc.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// Update edita los campos de catálogo. Amount nunca se toca por esta vía.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if in.EAN != nil {
		item.EAN = *in.EAN
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Shelf != nil {
		item.Shelf = *in.Shelf
	}
	if in.Box != nil {
		item.Box = *in.Box
	}
	if in.MinAmount != nil {
		if *in.MinAmount < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinAmount = *in.MinAmount
	}
	item.UpdatedAt = time.Now()
	if err := uc.store.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un artículo. Solo se permite con stock a cero, como la tabla
// original: primero se vacía, después se borra.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}
	if item.Amount > 0 {
		return domain.ErrItemInStock
	}
	return uc.store.Delete(ctx, id)
}

// ExportCSV exporta el catálogo como CSV con separador ';' (el delimitador de
// la exportación original).
func (uc *ItemUseCase) ExportCSV(ctx context.Context) ([]byte, error) {
	items, err := uc.store.List(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write([]string{"ID", "EAN", "Name", "Shelf", "Box", "Amount", "Min. Amount"}); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	for _, it := range items {
		record := []string{
			it.ID, it.EAN, it.Name, it.Shelf, it.Box,
			strconv.Itoa(it.Amount), strconv.Itoa(it.MinAmount),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	return buf.Bytes(), nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:           i.ID,
		EAN:          i.EAN,
		Name:         i.Name,
		Shelf:        i.Shelf,
		Box:          i.Box,
		Amount:       i.Amount,
		MinAmount:    i.MinAmount,
		BelowMinimum: i.BelowMinimum(),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
