package services

import (
	"errors"
)

// ValidationError es un fallo detectado antes de tocar el servidor:
// cantidad no positiva, origen igual al destino, lote ya resuelto, etc.
// Siempre es recuperable localmente y nunca se manda al API remoto.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// IsValidation indica si err es un fallo de validación local
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Broadcaster notifica eventos a las UIs conectadas. Puede ser nil en
// tests; los servicios verifican antes de emitir.
type Broadcaster interface {
	Broadcast(eventType string, payload interface{})
}
