package pqr

import (
	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Authorization and validation errors raised by the transition table
var (
	ErrCancelNotAllowed  = shared.NewDomainError("TRANSITION_FORBIDDEN", "Solo el administrador o el autor pueden cancelar el incidente")
	ErrCloseNotAllowed   = shared.NewDomainError("TRANSITION_FORBIDDEN", "No tiene permisos para cerrar el incidente")
	ErrCloseNotResolved  = shared.NewDomainError("INVALID_TRANSITION", "Solo se pueden cerrar incidentes resueltos")
	ErrReopenNotAllowed  = shared.NewDomainError("TRANSITION_FORBIDDEN", "No tiene permisos para reabrir el incidente")
	ErrReopenBadState    = shared.NewDomainError("INVALID_TRANSITION", "Solo se pueden reabrir incidentes resueltos o cerrados")
	ErrStatusNotAllowed  = shared.NewDomainError("TRANSITION_FORBIDDEN", "No tiene permisos para cambiar el estado del incidente")
	ErrResolutionMissing = shared.NewDomainError("RESOLUTION_REQUIRED", "Se requiere una resolución para marcar como resuelto")
)

// Actor carries the caller-relationship predicates the transition table
// gates on. The relationship to the ticket (owner, assignee) is resolved
// by the caller before the decision runs.
type Actor struct {
	ID         uuid.UUID
	Name       string
	Role       string
	IsAdmin    bool
	IsStaff    bool
	IsOwner    bool
	IsAssigned bool
}

// TransitionInput carries the optional texts accompanying a status change
type TransitionInput struct {
	Reason           string
	Resolution       string
	RootCause        string
	PreventiveAction string
}

// Decide evaluates the transition table for moving a ticket from current
// to target on behalf of actor. The rules run in precedence order:
//
//  1. CANCELLED: admin or the reporter only.
//  2. CLOSED: admin, the assignee, or the reporter when the complex allows
//     residents to close; the ticket must currently be RESOLVED.
//  3. REOPENED: admin, staff or the reporter; the ticket must currently be
//     RESOLVED or CLOSED.
//  4. Every other target: admin or staff; RESOLVED additionally requires a
//     non-empty resolution text.
//
// Rule 4 deliberately places no constraint on the current status: staff may
// move a ticket between working states freely.
func Decide(current, target TicketStatus, actor Actor, settings complexes.PQRSettings, input TransitionInput) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Estado de incidente desconocido")
	}

	switch target {
	case StatusCancelled:
		if !actor.IsAdmin && !actor.IsOwner {
			return ErrCancelNotAllowed
		}

	case StatusClosed:
		allowed := actor.IsAdmin || actor.IsAssigned || (actor.IsOwner && settings.ResidentCanClose)
		if !allowed {
			return ErrCloseNotAllowed
		}
		if current != StatusResolved {
			return ErrCloseNotResolved
		}

	case StatusReopened:
		if !actor.IsAdmin && !actor.IsStaff && !actor.IsOwner {
			return ErrReopenNotAllowed
		}
		if current != StatusResolved && current != StatusClosed {
			return ErrReopenBadState
		}

	default:
		if !actor.IsAdmin && !actor.IsStaff {
			return ErrStatusNotAllowed
		}
		if target == StatusResolved && input.Resolution == "" {
			return ErrResolutionMissing
		}
	}

	return nil
}
