package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
	"github.com/tu-usuario/almacen-stock/internal/domain/repository"
	"github.com/tu-usuario/almacen-stock/pkg/logger"
)

var _ repository.LedgerStore = (*LedgerStore)(nil)

// Canal de notificación para los appends del ledger.
const ledgerChannel = "stock_ledger"

// LedgerStore implementación del log append-only sobre PostgreSQL.
// Los appends no tienen conflicto entre sí: seq (bigserial) define el orden de
// inserción. La suscripción usa LISTEN/NOTIFY con una conexión dedicada y
// entrega el log completo ordenado en cada append.
type LedgerStore struct {
	pool *pgxpool.Pool
	log  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLedgerStore construye el adaptador del ledger.
func NewLedgerStore(pool *pgxpool.Pool, log *logger.Logger) *LedgerStore {
	return &LedgerStore{pool: pool, log: log}
}

const ledgerColumns = `id, seq, item_id, item_name, change, user_id, username, new_count, mode, created_at`

// Append persiste una entrada y notifica a los suscriptores en la misma vuelta.
// Asigna ID y Seq sobre la entrada recibida.
func (s *LedgerStore) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		WITH ins AS (
			INSERT INTO stock_ledger (id, item_id, item_name, change, user_id, username, new_count, mode, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING seq
		)
		SELECT seq, pg_notify('` + ledgerChannel + `', seq::text) FROM ins`
	var ignored any
	err := s.pool.QueryRow(ctx, query,
		entry.ID, entry.ItemID, entry.ItemName, entry.Change, entry.UserID,
		entry.Username, entry.NewCount, entry.Mode, entry.CreatedAt,
	).Scan(&entry.Seq, &ignored)
	if err != nil {
		return storeErr("append ledger", err)
	}
	return nil
}

// List devuelve las entradas en orden de inserción (seq ascendente).
// limit <= 0 devuelve todo el log.
func (s *LedgerStore) List(ctx context.Context, limit int) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger ORDER BY seq`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list ledger", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Seq, &e.ItemID, &e.ItemName, &e.Change, &e.UserID, &e.Username, &e.NewCount, &e.Mode, &e.CreatedAt); err != nil {
			return nil, storeErr("scan ledger entry", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list ledger", err)
	}
	return list, nil
}

// Subscribe arranca el listener LISTEN/NOTIFY y entrega el log completo al
// callback: una vez al suscribir y después en cada append. Un solo suscriptor
// a la vez (la vista de actividad reciente).
func (s *LedgerStore) Subscribe(fn func(entries []*entity.LedgerEntry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.stopLocked()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	// Entrega inicial con el estado actual del log.
	if entries, err := s.List(ctx, 0); err == nil {
		fn(entries)
	} else {
		s.log.Error().Err(err).Msg("ledger: lectura inicial de la suscripción")
	}

	go s.listen(ctx, s.done, fn)
	return nil
}

// Unsubscribe detiene el listener y espera a que termine.
func (s *LedgerStore) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *LedgerStore) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

// listen mantiene la conexión dedicada en LISTEN y re-deriva en cada
// notificación. Si la conexión se cae, reintenta con una pausa corta.
func (s *LedgerStore) listen(ctx context.Context, done chan struct{}, fn func(entries []*entity.LedgerEntry)) {
	defer close(done)
	for {
		if err := s.listenOnce(ctx, fn); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Warn().Err(err).Msg("ledger: listener caído, reintentando")
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *LedgerStore) listenOnce(ctx context.Context, fn func(entries []*entity.LedgerEntry)) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `LISTEN `+ledgerChannel); err != nil {
		return err
	}

	for {
		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			return err
		}
		entries, err := s.List(ctx, 0)
		if err != nil {
			s.log.Error().Err(err).Msg("ledger: releyendo el log tras notificación")
			continue
		}
		fn(entries)
	}
}
