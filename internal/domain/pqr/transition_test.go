package pqr

import (
	"testing"

	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminActor    = Actor{IsAdmin: true}
	staffActor    = Actor{IsStaff: true}
	ownerActor    = Actor{IsOwner: true}
	assignedStaff = Actor{IsStaff: true, IsAssigned: true}
	strangerActor = Actor{}

	openSettings   = complexes.PQRSettings{ResidentCanClose: true}
	strictSettings = complexes.PQRSettings{ResidentCanClose: false}
)

func TestDecide_Cancelled(t *testing.T) {
	t.Run("admin may cancel", func(t *testing.T) {
		assert.NoError(t, Decide(StatusInProgress, StatusCancelled, adminActor, strictSettings, TransitionInput{}))
	})

	t.Run("reporter may cancel", func(t *testing.T) {
		assert.NoError(t, Decide(StatusSubmitted, StatusCancelled, ownerActor, strictSettings, TransitionInput{}))
	})

	t.Run("staff may not cancel", func(t *testing.T) {
		err := Decide(StatusSubmitted, StatusCancelled, staffActor, strictSettings, TransitionInput{})
		assert.ErrorIs(t, err, ErrCancelNotAllowed)
	})

	t.Run("assigned staff may not cancel either", func(t *testing.T) {
		err := Decide(StatusInProgress, StatusCancelled, assignedStaff, strictSettings, TransitionInput{})
		assert.ErrorIs(t, err, ErrCancelNotAllowed)
	})
}

func TestDecide_Closed(t *testing.T) {
	t.Run("admin closes a resolved ticket", func(t *testing.T) {
		assert.NoError(t, Decide(StatusResolved, StatusClosed, adminActor, strictSettings, TransitionInput{}))
	})

	t.Run("assignee closes a resolved ticket", func(t *testing.T) {
		assert.NoError(t, Decide(StatusResolved, StatusClosed, assignedStaff, strictSettings, TransitionInput{}))
	})

	t.Run("unassigned staff may not close", func(t *testing.T) {
		err := Decide(StatusResolved, StatusClosed, staffActor, strictSettings, TransitionInput{})
		assert.ErrorIs(t, err, ErrCloseNotAllowed)
	})

	t.Run("reporter closes only when the complex allows it", func(t *testing.T) {
		assert.NoError(t, Decide(StatusResolved, StatusClosed, ownerActor, openSettings, TransitionInput{}))

		err := Decide(StatusResolved, StatusClosed, ownerActor, strictSettings, TransitionInput{})
		assert.ErrorIs(t, err, ErrCloseNotAllowed)
	})

	t.Run("closing a non-resolved ticket is rejected regardless of role", func(t *testing.T) {
		err := Decide(StatusInProgress, StatusClosed, adminActor, openSettings, TransitionInput{})
		require.ErrorIs(t, err, ErrCloseNotResolved)
		assert.Contains(t, err.Error(), "Solo se pueden cerrar incidentes resueltos")
	})
}

func TestDecide_Reopened(t *testing.T) {
	t.Run("admin, staff and reporter may reopen", func(t *testing.T) {
		for _, actor := range []Actor{adminActor, staffActor, ownerActor} {
			assert.NoError(t, Decide(StatusClosed, StatusReopened, actor, strictSettings, TransitionInput{}))
			assert.NoError(t, Decide(StatusResolved, StatusReopened, actor, strictSettings, TransitionInput{}))
		}
	})

	t.Run("stranger may not reopen", func(t *testing.T) {
		err := Decide(StatusClosed, StatusReopened, strangerActor, strictSettings, TransitionInput{})
		assert.ErrorIs(t, err, ErrReopenNotAllowed)
	})

	t.Run("only resolved or closed tickets reopen", func(t *testing.T) {
		err := Decide(StatusInProgress, StatusReopened, adminActor, strictSettings, TransitionInput{})
		assert.ErrorIs(t, err, ErrReopenBadState)
	})
}

func TestDecide_OtherTargets(t *testing.T) {
	t.Run("staff moves tickets between working states freely", func(t *testing.T) {
		assert.NoError(t, Decide(StatusSubmitted, StatusInReview, staffActor, strictSettings, TransitionInput{}))
		assert.NoError(t, Decide(StatusDraft, StatusInProgress, staffActor, strictSettings, TransitionInput{}))
		assert.NoError(t, Decide(StatusWaitingInfo, StatusRejected, adminActor, strictSettings, TransitionInput{}))
	})

	t.Run("reporter may not move working states", func(t *testing.T) {
		err := Decide(StatusSubmitted, StatusInProgress, ownerActor, strictSettings, TransitionInput{})
		assert.ErrorIs(t, err, ErrStatusNotAllowed)
	})

	t.Run("resolving requires a resolution text", func(t *testing.T) {
		err := Decide(StatusInProgress, StatusResolved, staffActor, strictSettings, TransitionInput{})
		require.ErrorIs(t, err, ErrResolutionMissing)
		assert.Contains(t, err.Error(), "Se requiere una resolución para marcar como resuelto")

		assert.NoError(t, Decide(StatusInProgress, StatusResolved, staffActor, strictSettings, TransitionInput{Resolution: "Se reparó la tubería"}))
	})

	t.Run("unknown target status is rejected", func(t *testing.T) {
		err := Decide(StatusOpen, TicketStatus("ARCHIVED"), adminActor, strictSettings, TransitionInput{})
		assert.Error(t, err)
	})
}
