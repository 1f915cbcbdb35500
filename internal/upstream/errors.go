package upstream

import (
	"errors"
	"fmt"
)

// NetworkError es un fallo de transporte o una respuesta ilegible.
// Se distingue del rechazo de negocio para que el usuario pueda reintentar
// la acción sin re-validar nada.
type NetworkError struct {
	Action string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.Action, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ApplicationError es un rechazo de negocio reportado por el servidor
// (status="error"). El mensaje se muestra al usuario tal cual llegó.
type ApplicationError struct {
	Action  string
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request %s rejected by server", e.Action)
	}
	return e.Message
}

// IsNetwork indica si err es un fallo de transporte
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsApplication indica si err es un rechazo de negocio del servidor
func IsApplication(err error) bool {
	var ae *ApplicationError
	return errors.As(err, &ae)
}
