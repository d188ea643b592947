package queries

import (
	"errors"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/guard"
)

var (
	ErrEvaluateScanGateQueryIsNotConstructed = errors.New(
		"EvaluateScanGateQuery must be created via NewEvaluateScanGateQuery constructor",
	)
)

// EvaluateScanGateQuery computes the current scan gate state of an order
// without attempting a transition. Warehouse dashboards poll this to show
// progress toward the gate.
type EvaluateScanGateQuery struct {
	orderID   kernel.UUID
	direction scan.Direction

	guard guard.ConstructorGuard
}

// NewEvaluateScanGateQuery creates a query for an order's gate state.
func NewEvaluateScanGateQuery(orderID kernel.UUID, direction scan.Direction) (EvaluateScanGateQuery, error) {
	if err := errors.Join(orderID.Validate(), direction.Validate()); err != nil {
		return EvaluateScanGateQuery{}, err
	}
	return EvaluateScanGateQuery{
		orderID:   orderID,
		direction: direction,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q EvaluateScanGateQuery) Validate() error {
	return q.guard.Validate(ErrEvaluateScanGateQueryIsNotConstructed)
}

// OrderID returns the order whose gate is evaluated.
func (q EvaluateScanGateQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Direction returns the gate direction to evaluate.
func (q EvaluateScanGateQuery) Direction() scan.Direction {
	return q.direction
}

// EvaluateScanGateQueryResponse is the gate state snapshot.
type EvaluateScanGateQueryResponse struct {
	OrderID     kernel.UUID
	Direction   scan.Direction
	Required    int
	Scanned     int
	Satisfied   bool
	OverScanned bool
	Shortfall   int
}
