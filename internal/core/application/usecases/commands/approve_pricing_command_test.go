package commands_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/commands"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

func TestNewApprovePricingCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	cmd, err := commands.NewApprovePricingCommand(
		orderID, decimal.NewFromInt(1000), decimal.NewFromInt(25), actorID, "seasonal rate")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.True(t, decimal.NewFromInt(1000).Equal(cmd.BasePrice()))
	assert.True(t, decimal.NewFromInt(25).Equal(cmd.MarginPercent()))
	assert.Equal(t, actorID, cmd.ActorID())
	assert.Equal(t, "seasonal rate", cmd.Notes())
}

func TestNewApprovePricingCommand_ZeroMarginAllowed(t *testing.T) {
	_, err := commands.NewApprovePricingCommand(
		kernel.NewUUID(), decimal.NewFromInt(1000), decimal.Zero, kernel.NewUUID(), "")
	require.NoError(t, err)
}

func TestNewApprovePricingCommand_NegativeMargin(t *testing.T) {
	_, err := commands.NewApprovePricingCommand(
		kernel.NewUUID(), decimal.NewFromInt(1000), decimal.NewFromInt(-1), kernel.NewUUID(), "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewApprovePricingCommand_NonPositiveBasePrice(t *testing.T) {
	for _, base := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		_, err := commands.NewApprovePricingCommand(
			kernel.NewUUID(), base, decimal.NewFromInt(25), kernel.NewUUID(), "",
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	}
}

func TestApprovePricingCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.ApprovePricingCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrApprovePricingCommandIsNotConstructed)
}
