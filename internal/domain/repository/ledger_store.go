package repository

import (
	"context"

	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
)

// LedgerStore define el puerto del log append-only de movimientos.
// Las entradas nunca se modifican ni se reordenan: Seq creciente define la
// recencia. Los appends son independientes entre sí (sin conflicto).
type LedgerStore interface {
	// Append persiste una entrada nueva y le asigna ID y Seq.
	Append(ctx context.Context, entry *entity.LedgerEntry) error
	// List devuelve las entradas en orden de inserción (Seq ascendente).
	// limit <= 0 devuelve todo el log.
	List(ctx context.Context, limit int) ([]*entity.LedgerEntry, error)
	// Subscribe registra un callback que recibe el log completo ordenado en
	// cada append. El callback se invoca también una vez al suscribir, con el
	// estado actual.
	Subscribe(fn func(entries []*entity.LedgerEntry)) error
	// Unsubscribe detiene la entrega de notificaciones.
	Unsubscribe()
}
