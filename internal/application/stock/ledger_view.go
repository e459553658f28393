package stock

import (
	"sync"

	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
	"github.com/tu-usuario/almacen-stock/internal/domain/repository"
)

// DefaultViewLimit entradas visibles por defecto en la actividad reciente.
const DefaultViewLimit = 20

// Project deriva la vista "actividad reciente" a partir del log completo:
// más reciente primero, truncada a limit entradas. Es una función pura e
// idempotente, el mismo log produce siempre la misma vista.
func Project(entries []*entity.LedgerEntry, limit int) []*entity.LedgerEntry {
	if limit <= 0 {
		limit = DefaultViewLimit
	}
	view := make([]*entity.LedgerEntry, 0, limit)
	for i := len(entries) - 1; i >= 0 && len(view) < limit; i-- {
		view = append(view, entries[i])
	}
	return view
}

// LedgerView mantiene la proyección acotada del ledger para mostrar en
// pantalla. Se suscribe al store y re-deriva la vista en cada notificación.
type LedgerView struct {
	ledger repository.LedgerStore
	limit  int

	mu   sync.RWMutex
	view []*entity.LedgerEntry
}

// NewLedgerView construye la vista. limit <= 0 usa DefaultViewLimit.
func NewLedgerView(ledger repository.LedgerStore, limit int) *LedgerView {
	if limit <= 0 {
		limit = DefaultViewLimit
	}
	return &LedgerView{ledger: ledger, limit: limit}
}

// Start se suscribe al ledger; el store entrega el log completo ordenado en
// cada append (y una vez al suscribir).
func (v *LedgerView) Start() error {
	return v.ledger.Subscribe(func(entries []*entity.LedgerEntry) {
		projected := Project(entries, v.limit)
		v.mu.Lock()
		v.view = projected
		v.mu.Unlock()
	})
}

// Stop cancela la suscripción.
func (v *LedgerView) Stop() {
	v.ledger.Unsubscribe()
}

// Recent devuelve la vista actual, más reciente primero.
func (v *LedgerView) Recent() []*entity.LedgerEntry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]*entity.LedgerEntry, len(v.view))
	copy(out, v.view)
	return out
}
