package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrNoCountAvailable  = errors.New("el local no tiene conteos de inventario")
	ErrOrderHasNoLines   = errors.New("el pedido no tiene líneas esperadas")
	ErrMalformedEInvoice = errors.New("factura electrónica malformada")
)
