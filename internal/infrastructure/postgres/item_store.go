package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/almacen-stock/internal/domain"
	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
	"github.com/tu-usuario/almacen-stock/internal/domain/repository"
)

var _ repository.ItemStore = (*ItemStore)(nil)

// ItemStore implementación del puerto ItemStore sobre PostgreSQL.
// AmountTransaction usa compare-and-retry optimista: el UPDATE solo aplica si
// amount no cambió desde la lectura; si otra sesión ganó, se relee y se
// reaplica fn. Así nunca se pierde una actualización concurrente.
type ItemStore struct {
	pool *pgxpool.Pool
}

// NewItemStore construye el adaptador de persistencia del catálogo.
func NewItemStore(pool *pgxpool.Pool) *ItemStore {
	return &ItemStore{pool: pool}
}

const itemColumns = `id, ean, name, shelf, box, amount, min_amount, created_at, updated_at`

// Get obtiene un artículo por ID. Devuelve (nil, nil) si no existe.
func (s *ItemStore) Get(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	var it entity.Item
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.EAN, &it.Name, &it.Shelf, &it.Box, &it.Amount, &it.MinAmount,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get item", err)
	}
	return &it, nil
}

// List devuelve el catálogo completo ordenado por ID.
func (s *ItemStore) List(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list items", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.EAN, &it.Name, &it.Shelf, &it.Box, &it.Amount, &it.MinAmount, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, storeErr("scan item", err)
		}
		list = append(list, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list items", err)
	}
	return list, nil
}

// Create persiste un artículo nuevo. ErrDuplicate si el ID ya existe.
func (s *ItemStore) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, ean, name, shelf, box, amount, min_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.pool.Exec(ctx, query,
		item.ID, item.EAN, item.Name, item.Shelf, item.Box, item.Amount, item.MinAmount,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert item", err)
	}
	return nil
}

// Update actualiza los campos de catálogo. Amount queda fuera a propósito:
// solo muta vía AmountTransaction.
func (s *ItemStore) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET ean = $2, name = $3, shelf = $4, box = $5, min_amount = $6, updated_at = $7
		WHERE id = $1`
	_, err := s.pool.Exec(ctx, query,
		item.ID, item.EAN, item.Name, item.Shelf, item.Box, item.MinAmount, item.UpdatedAt,
	)
	if err != nil {
		return storeErr("update item", err)
	}
	return nil
}

// Delete elimina un artículo por ID.
func (s *ItemStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return storeErr("delete item", err)
	}
	return nil
}

// AmountTransaction aplica fn como read-modify-write atómico sobre amount.
//
// Bucle compare-and-retry: se lee el valor vigente, se calcula el nuevo con fn
// y se intenta `UPDATE ... WHERE amount = <leído>`. Si ninguna fila coincide es
// que otra escritura concurrente ganó; se relee y se reaplica fn hasta
// confirmar. fn decide sobre el valor que el store entrega al aplicar, nunca
// sobre un snapshot del caller. Si fn devuelve error no se ejecuta ningún
// UPDATE: todo-o-nada, también si el caller abandona por ctx.
func (s *ItemStore) AmountTransaction(ctx context.Context, itemID string, fn func(current int) (int, error)) (int, error) {
	for {
		var current int
		err := s.pool.QueryRow(ctx, `SELECT amount FROM items WHERE id = $1`, itemID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, domain.ErrItemNotFound
			}
			return 0, storeErr("read amount", err)
		}

		next, err := fn(current)
		if err != nil {
			return 0, err
		}

		tag, err := s.pool.Exec(ctx,
			`UPDATE items SET amount = $2, updated_at = now() WHERE id = $1 AND amount = $3`,
			itemID, next, current,
		)
		if err != nil {
			return 0, storeErr("commit amount", err)
		}
		if tag.RowsAffected() == 1 {
			return next, nil
		}

		// Conflicto: otra sesión escribió amount entre la lectura y el UPDATE.
		// Reintentar salvo que el caller haya cancelado.
		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}
}
