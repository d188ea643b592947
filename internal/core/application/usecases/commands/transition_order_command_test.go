package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/commands"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

func TestNewTransitionOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(orderID, order.Submitted, actorID, "handover")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, order.Submitted, cmd.TargetStatus())
	assert.Equal(t, actorID, cmd.ActorID())
	assert.Equal(t, "handover", cmd.Note())
}

func TestNewTransitionOrderCommand_InvalidTarget(t *testing.T) {
	_, err := commands.NewTransitionOrderCommand(
		kernel.NewUUID(), order.Unknown, kernel.NewUUID(), "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewTransitionOrderCommand_InvalidActor(t *testing.T) {
	_, err := commands.NewTransitionOrderCommand(
		kernel.NewUUID(), order.Submitted, kernel.UUID{}, "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestTransitionOrderCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.TransitionOrderCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
}
