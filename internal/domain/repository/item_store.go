package repository

import (
	"context"

	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
)

// ItemStore define el puerto de persistencia del catálogo de artículos.
// Amount solo se muta vía AmountTransaction; Create/Update manejan los campos
// de catálogo.
type ItemStore interface {
	// Get obtiene un artículo por su ID. Devuelve (nil, nil) si no existe.
	Get(ctx context.Context, id string) (*entity.Item, error)
	// List devuelve el catálogo completo ordenado por ID.
	List(ctx context.Context) ([]*entity.Item, error)
	// Create persiste un artículo nuevo. domain.ErrDuplicate si el ID ya existe.
	Create(ctx context.Context, item *entity.Item) error
	// Update actualiza los campos de catálogo (nunca Amount).
	Update(ctx context.Context, item *entity.Item) error
	// Delete elimina un artículo por ID.
	Delete(ctx context.Context, id string) error

	// AmountTransaction aplica fn como read-modify-write atómico sobre Amount.
	// El store entrega el valor vigente en el momento de aplicar (no un snapshot
	// del caller) y reintenta fn automáticamente si otra escritura concurrente
	// gana la carrera, hasta confirmar o hasta que fn devuelva error.
	// Si fn devuelve error la transacción aborta sin mutar nada y el error se
	// propaga tal cual. Devuelve el valor confirmado.
	AmountTransaction(ctx context.Context, itemID string, fn func(current int) (int, error)) (int, error)
}
