package stock_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-stock/internal/application/stock"
	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
)

func buildEntries(n int) []*entity.LedgerEntry {
	entries := make([]*entity.LedgerEntry, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, &entity.LedgerEntry{
			ID:       fmt.Sprintf("e-%d", i),
			Seq:      int64(i),
			ItemID:   "A1",
			NewCount: i,
		})
	}
	return entries
}

// Con 25 entradas el log muestra exactamente las 20 más recientes, la más
// nueva primero.
func TestProject_Truncado20MasRecientePrimero(t *testing.T) {
	view := stock.Project(buildEntries(25), 20)

	require.Len(t, view, 20)
	assert.Equal(t, int64(25), view[0].Seq, "la entrada más nueva va primero")
	assert.Equal(t, int64(6), view[19].Seq, "las 5 más viejas quedan fuera")
}

// Proyección idempotente: el mismo log produce siempre la misma vista.
func TestProject_Idempotente(t *testing.T) {
	entries := buildEntries(25)

	v1 := stock.Project(entries, 20)
	v2 := stock.Project(entries, 20)

	require.Equal(t, len(v1), len(v2))
	for i := range v1 {
		assert.Equal(t, v1[i].ID, v2[i].ID)
	}
}

// Logs más cortos que el límite se muestran completos, invertidos.
func TestProject_LogCorto(t *testing.T) {
	view := stock.Project(buildEntries(3), 20)

	require.Len(t, view, 3)
	assert.Equal(t, int64(3), view[0].Seq)
	assert.Equal(t, int64(1), view[2].Seq)
}

func TestProject_LogVacio(t *testing.T) {
	assert.Empty(t, stock.Project(nil, 20))
}

// La vista suscrita re-deriva en cada notificación y Recent entrega copias.
func TestLedgerView_SuscripcionYRecent(t *testing.T) {
	ledgerStore := &notifyingLedgerStore{}
	view := stock.NewLedgerView(ledgerStore, 20)
	require.NoError(t, view.Start())
	defer view.Stop()

	ledgerStore.notify(buildEntries(25))
	recent := view.Recent()
	require.Len(t, recent, 20)
	assert.Equal(t, int64(25), recent[0].Seq)

	// Re-notificar el mismo log no cambia la vista (idempotencia al re-suscribir).
	ledgerStore.notify(buildEntries(25))
	again := view.Recent()
	require.Equal(t, len(recent), len(again))
	for i := range recent {
		assert.Equal(t, recent[i].ID, again[i].ID)
	}
}

// notifyingLedgerStore solo implementa la parte de suscripción.
type notifyingLedgerStore struct {
	fakeLedgerStore
	fn func(entries []*entity.LedgerEntry)
}

func (s *notifyingLedgerStore) Subscribe(fn func(entries []*entity.LedgerEntry)) error {
	s.fn = fn
	return nil
}

func (s *notifyingLedgerStore) notify(entries []*entity.LedgerEntry) {
	if s.fn != nil {
		s.fn(entries)
	}
}
