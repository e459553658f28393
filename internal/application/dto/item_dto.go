package dto

import "time"

// CreateItemRequest alta de artículo. El ID lo aporta el caller (código de estantería).
type CreateItemRequest struct {
	ID        string `json:"id"`
	EAN       string `json:"ean"`
	Name      string `json:"name"`
	Shelf     string `json:"shelf"`
	Box       string `json:"box"`
	Amount    int    `json:"amount"`     // stock inicial, >= 0
	MinAmount int    `json:"min_amount"` // umbral de reposición, >= 0
}

// UpdateItemRequest edición de campos de catálogo. Amount no se toca aquí:
// el stock solo cambia vía movimientos.
type UpdateItemRequest struct {
	EAN       *string `json:"ean"`
	Name      *string `json:"name"`
	Shelf     *string `json:"shelf"`
	Box       *string `json:"box"`
	MinAmount *int    `json:"min_amount"`
}

// ItemResponse representación de un artículo.
type ItemResponse struct {
	ID           string    `json:"id"`
	EAN          string    `json:"ean"`
	Name         string    `json:"name"`
	Shelf        string    `json:"shelf"`
	Box          string    `json:"box"`
	Amount       int       `json:"amount"`
	MinAmount    int       `json:"min_amount"`
	BelowMinimum bool      `json:"below_minimum"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
