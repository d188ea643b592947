package commands_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
)

// newTestOrder creates a Draft order with one 5-unit item and an event window
// that is already in the past, so date-gated transitions succeed.
func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	venue, err := order.NewVenue("Expo Hall", "12 Fair St", "Dana", "+37100000000")
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), 5, "furniture", "bar counter", nil)
	require.NoError(t, err)

	start := time.Now().UTC().AddDate(0, 0, -3)
	end := time.Now().UTC().AddDate(0, 0, -1)

	ord, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), nil, venue, start, end, []order.Item{item},
	)
	require.NoError(t, err)

	return ord
}

// orderInStatus walks a fresh test order along the happy path until it
// reaches the wanted status.
func orderInStatus(t *testing.T, want order.Status) *order.Order {
	t.Helper()

	ord := newTestOrder(t)
	now := time.Now().UTC()
	actorID := kernel.NewUUID()

	steps := []func() error{
		func() error { return ord.TransitionTo(order.Submitted, now) },
		func() error { return ord.TransitionTo(order.PricingReview, now) },
		func() error {
			return ord.AdjustPricing(decimal.NewFromInt(1000), "tier override", actorID, now)
		},
		func() error {
			return ord.ApprovePricing(decimal.NewFromInt(1000), decimal.NewFromInt(25), actorID, now)
		},
		func() error { return ord.TransitionTo(order.Confirmed, now) },
		func() error { return ord.TransitionTo(order.InPreparation, now) },
		func() error {
			return ord.MarkReadyForDelivery(scan.Report{
				Direction: scan.Outbound, Required: ord.RequiredQuantity(), Scanned: ord.RequiredQuantity(),
			})
		},
		func() error { return ord.TransitionTo(order.InTransit, now) },
		func() error { return ord.TransitionTo(order.Delivered, now) },
		func() error { return ord.TransitionTo(order.InUse, now) },
		func() error { return ord.TransitionTo(order.AwaitingReturn, now) },
	}

	for _, step := range steps {
		if ord.Status() == want {
			return ord
		}
		require.NoError(t, step())
	}

	require.Equal(t, want, ord.Status())
	return ord
}

// newScanEvent is a shorthand for building scan events in handler tests.
func newScanEvent(t *testing.T, orderID kernel.UUID, direction scan.Direction, quantity int) *scan.Event {
	t.Helper()

	event, err := scan.NewEvent(
		kernel.NewUUID(), orderID, direction, quantity, kernel.NewUUID(), time.Now().UTC(),
	)
	require.NoError(t, err)
	return event
}
