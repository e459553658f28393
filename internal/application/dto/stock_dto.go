package dto

import "time"

// MovementRequest petición de movimiento de stock (efímera, no se persiste).
// Quantity ausente o inválida se normaliza a 1, como el formulario original
// de la estantería donde el caso común es "una unidad".
type MovementRequest struct {
	ItemID   string `json:"item_id"`
	Mode     string `json:"mode"` // "in" | "out"
	Quantity int    `json:"quantity"`
}

// MovementResponse resultado de un movimiento confirmado.
type MovementResponse struct {
	AmountAfter int            `json:"amount_after"`
	Entry       LedgerEntryDTO `json:"entry"`
}

// LedgerEntryDTO entrada del ledger para respuestas HTTP.
type LedgerEntryDTO struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Change    int       `json:"change"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	NewCount  int       `json:"new_count"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
}
