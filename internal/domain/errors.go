package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("...: %w") para añadir
// cantidades y contexto; los handlers ramifican con errors.Is.
var (
	ErrInvalidInput              = errors.New("entrada inválida")
	ErrNotFound                  = errors.New("registro de stock no encontrado")
	ErrDuplicate                 = errors.New("ya existe registro de stock para el artículo")
	ErrProductNotAvailable       = errors.New("producto no disponible para pedidos")
	ErrInsufficientStock         = errors.New("stock disponible insuficiente")
	ErrInsufficientReserved      = errors.New("stock reservado insuficiente")
	ErrReleaseFailed             = errors.New("no se pudo liberar la reserva")
	ErrAvailableLessThanReserved = errors.New("la cantidad disponible no puede ser menor que la reservada")
	ErrConflict                  = errors.New("conflicto por mutación concurrente, reintentar")
)
