package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrItemNotFound       = errors.New("artículo no encontrado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStoreUnavailable   = errors.New("almacén de datos no disponible")
	ErrLedgerAppendFailed = errors.New("movimiento aplicado pero sin registro en el ledger")
	ErrItemInStock        = errors.New("el artículo aún tiene stock, no se puede eliminar")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
