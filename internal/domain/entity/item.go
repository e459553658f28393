package entity

import "time"

// Item representa un artículo del catálogo del almacén.
// El ID lo asigna quien crea el artículo (código corto que se teclea o escanea
// en la estantería), no es un UUID generado.
// Amount solo se modifica vía movimientos de stock (transacción atómica del
// ItemStore); los campos de catálogo se editan con Update.
type Item struct {
	ID        string
	EAN       string // European Article Number del producto
	Name      string
	Shelf     string // estantería donde se guarda
	Box       string // caja dentro de la estantería
	Amount    int    // stock actual, invariante: >= 0
	MinAmount int    // umbral de reposición
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelowMinimum indica si el stock está por debajo del umbral de reposición.
func (i *Item) BelowMinimum() bool {
	return i.Amount < i.MinAmount
}
