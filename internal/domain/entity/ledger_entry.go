package entity

import "time"

// Modos de movimiento de stock.
const (
	ModeIn  = "in"  // entrada al almacén
	ModeOut = "out" // salida del almacén
)

// LedgerEntry es el registro inmutable de un movimiento de stock.
// ItemName y Username se denormalizan a propósito: la entrada debe seguir
// siendo legible aunque el artículo o el usuario se borren o renombren después.
// Nunca se actualiza ni se borra; Seq define el orden de inserción.
type LedgerEntry struct {
	ID        string
	Seq       int64  // orden de inserción, lo asigna el store
	ItemID    string
	ItemName  string // snapshot del nombre al momento del movimiento
	Change    int    // magnitud del cambio, siempre positiva
	UserID    string
	Username  string // snapshot del nombre visible del usuario
	NewCount  int    // stock resultante tras el movimiento, según el store
	Mode      string // "in" | "out"
	CreatedAt time.Time
}
