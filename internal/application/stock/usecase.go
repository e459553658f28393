package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/almacen-stock/internal/domain"
	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
	"github.com/tu-usuario/almacen-stock/internal/domain/repository"
	"github.com/tu-usuario/almacen-stock/pkg/logger"
)

// UseCase registra movimientos de stock: ajuste atómico del contador Amount
// contra el ItemStore + entrada de auditoría en el LedgerStore.
// No guarda estado entre llamadas: modo, cantidad y usuario viajan en cada
// petición.
type UseCase struct {
	items  repository.ItemStore
	ledger repository.LedgerStore
	log    *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(items repository.ItemStore, ledger repository.LedgerStore, log *logger.Logger) *UseCase {
	return &UseCase{items: items, ledger: ledger, log: log}
}

// ActingUser identifica a quien registra el movimiento. Username se denormaliza
// en la entrada del ledger.
type ActingUser struct {
	ID       string
	Username string
}

// MovementInput entrada para RecordMovement.
type MovementInput struct {
	ItemID   string
	Mode     string // entity.ModeIn | entity.ModeOut
	Quantity int    // <= 0 se normaliza a 1
	User     ActingUser
}

// MovementResult resultado de un movimiento confirmado.
type MovementResult struct {
	AmountAfter int
	Entry       *entity.LedgerEntry
}

// Resolve busca un artículo por su ID y devuelve el snapshot actual.
// Es el paso "buscar artículo" del formulario: el caller lo usa para mostrar
// nombre y stock antes de confirmar el movimiento.
func (uc *UseCase) Resolve(ctx context.Context, itemID string) (*entity.Item, error) {
	item, err := uc.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// RecordMovement aplica un movimiento de stock:
//
//  1. Resuelve el artículo (snapshot para el nombre y el pre-check).
//  2. Muta Amount con la transacción atómica del store. Para "out" hay doble
//     verificación: pre-check sobre el snapshot para feedback rápido, y
//     re-verificación dentro de la transacción sobre el valor que entrega el
//     store al aplicar. Amount nunca queda negativo, ni con decrementos
//     concurrentes entre el pre-check y el commit.
//  3. Escribe la entrada del ledger con el contador resultante que devolvió
//     la transacción (no recalculado localmente).
//
// Si el append del ledger falla tras confirmar el contador, el contador NO se
// revierte: se devuelve ErrLedgerAppendFailed y se registra todo lo necesario
// para reconciliar a mano.
func (uc *UseCase) RecordMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if in.Mode != entity.ModeIn && in.Mode != entity.ModeOut {
		return nil, domain.ErrInvalidInput
	}
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}

	item, err := uc.items.Get(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	var amountAfter int
	switch in.Mode {
	case entity.ModeIn:
		amountAfter, err = uc.items.AmountTransaction(ctx, item.ID, func(current int) (int, error) {
			return current + qty, nil
		})
	case entity.ModeOut:
		// Pre-check sobre el snapshot: rechazo inmediato sin intentar la
		// transacción. No es autoritativo, solo feedback rápido.
		if item.Amount < qty {
			return nil, domain.ErrInsufficientStock
		}
		amountAfter, err = uc.items.AmountTransaction(ctx, item.ID, func(current int) (int, error) {
			// Re-verificación autoritativa con el valor vigente del store:
			// un decremento concurrente pudo ganarnos entre el pre-check y aquí.
			if current < qty {
				return 0, domain.ErrInsufficientStock
			}
			return current - qty, nil
		})
	}
	if err != nil {
		return nil, err
	}

	entry := &entity.LedgerEntry{
		ItemID:    item.ID,
		ItemName:  item.Name,
		Change:    qty,
		UserID:    in.User.ID,
		Username:  in.User.Username,
		NewCount:  amountAfter,
		Mode:      in.Mode,
		CreatedAt: time.Now(),
	}
	if err := uc.ledger.Append(ctx, entry); err != nil {
		// El contador ya está confirmado: estado inconsistente entre contador
		// y auditoría. No se revierte; queda trazado para reconciliación manual.
		uc.log.Error().
			Err(err).
			Str("item_id", item.ID).
			Str("item_name", item.Name).
			Str("mode", in.Mode).
			Int("change", qty).
			Int("new_count", amountAfter).
			Str("user_id", in.User.ID).
			Msg("movimiento aplicado pero falló el append al ledger, reconciliar a mano")
		return nil, fmt.Errorf("%w: %v", domain.ErrLedgerAppendFailed, err)
	}

	if in.Mode == entity.ModeOut && amountAfter < item.MinAmount {
		uc.log.Warn().
			Str("item_id", item.ID).
			Str("item_name", item.Name).
			Int("amount", amountAfter).
			Int("min_amount", item.MinAmount).
			Msg("stock por debajo del mínimo, pedir reposición")
	}

	return &MovementResult{AmountAfter: amountAfter, Entry: entry}, nil
}
