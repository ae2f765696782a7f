// Package engine contains the VPS lifecycle core: the points ledger, the
// access policy, the invite tracker, the VPS registry and the periodic
// sweepers. Every mutation path, whether triggered by a command or by a
// background sweep, goes through this package.
package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds callers are expected to branch on.
// Use errors.Is to classify a returned error.
var (
	// ErrNotFound marks an unknown VPS, user or giveaway id.
	ErrNotFound = errors.New("no encontrado")

	// ErrUnauthorized marks a failed authorization check.
	ErrUnauthorized = errors.New("no autorizado")

	// ErrInvalidArgument marks a rejected input, such as a port out of
	// range or an unknown winner policy.
	ErrInvalidArgument = errors.New("argumento inválido")

	// ErrRuntimeFailure marks a container engine call that failed or
	// timed out.
	ErrRuntimeFailure = errors.New("fallo del runtime")

	// ErrAlreadyInState marks a request that would not change anything,
	// such as stopping an already stopped VPS or joining a giveaway twice.
	ErrAlreadyInState = errors.New("ya está en ese estado")
)

// InsufficientFundsError reports a debit larger than the available balance,
// carrying the exact shortfall for the user-facing message.
type InsufficientFundsError struct {
	Need int
	Have int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("puntos insuficientes: necesitas %d, tienes %d (faltan %d)",
		e.Need, e.Have, e.Shortfall())
}

// Shortfall returns how many points are missing.
func (e *InsufficientFundsError) Shortfall() int {
	return e.Need - e.Have
}

// AsInsufficientFunds extracts an InsufficientFundsError from an error chain.
func AsInsufficientFunds(err error) (*InsufficientFundsError, bool) {
	var target *InsufficientFundsError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// UserMessage renders an engine error as a message fit for an end user.
// Insufficient-funds errors keep the exact shortfall; everything else
// falls back to the error text itself.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if funds, ok := AsInsufficientFunds(err); ok {
		return fmt.Sprintf("No tienes suficientes puntos: necesitas %d, tienes %d (te faltan %d).",
			funds.Need, funds.Have, funds.Shortfall())
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "No se encontró el recurso solicitado."
	case errors.Is(err, ErrUnauthorized):
		return "No tienes acceso a ese VPS."
	case errors.Is(err, ErrAlreadyInState):
		return "Ya está en ese estado."
	case errors.Is(err, ErrRuntimeFailure):
		return "El runtime de contenedores falló. Inténtalo de nuevo más tarde."
	}
	return err.Error()
}

// runtimeErr wraps an adapter failure so callers can classify it with
// errors.Is(err, ErrRuntimeFailure) while keeping the cause visible.
func runtimeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrRuntimeFailure, err)
}
