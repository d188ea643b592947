package queries

import (
	"context"

	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// EvaluateScanGateQueryHandler computes gate progress with two summations
// over the persisted model. The result is advisory: the authoritative check
// reruns inside the transition transaction.
type EvaluateScanGateQueryHandler struct {
	db *gorm.DB
}

// NewEvaluateScanGateQueryHandler creates a handler for gate state queries.
func NewEvaluateScanGateQueryHandler(db *gorm.DB) EvaluateScanGateQueryHandler {
	return EvaluateScanGateQueryHandler{db: db}
}

// Handle returns the order's gate snapshot for the requested direction.
func (h EvaluateScanGateQueryHandler) Handle(
	ctx context.Context,
	query EvaluateScanGateQuery,
) (EvaluateScanGateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return EvaluateScanGateQueryResponse{}, err
	}

	orderID := query.OrderID().String()

	var known int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(1) FROM orders WHERE id = ? AND deleted_at IS NULL
	`, orderID).Row().Scan(&known)
	if err != nil {
		return EvaluateScanGateQueryResponse{}, err
	}
	if known == 0 {
		return EvaluateScanGateQueryResponse{}, errs.NewObjectNotFoundError("order", orderID)
	}

	var required int
	err = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(quantity), 0) FROM order_items WHERE order_id = ?
	`, orderID).Row().Scan(&required)
	if err != nil {
		return EvaluateScanGateQueryResponse{}, err
	}

	var scanned int
	err = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(quantity), 0) FROM scan_events
		WHERE order_id = ? AND direction = ?
	`, orderID, int(query.Direction())).Row().Scan(&scanned)
	if err != nil {
		return EvaluateScanGateQueryResponse{}, err
	}

	report := scan.Report{
		Direction: query.Direction(),
		Required:  required,
		Scanned:   scanned,
	}

	return EvaluateScanGateQueryResponse{
		OrderID:     query.OrderID(),
		Direction:   query.Direction(),
		Required:    report.Required,
		Scanned:     report.Scanned,
		Satisfied:   report.Satisfied(),
		OverScanned: report.OverScanned(),
		Shortfall:   report.Shortfall(),
	}, nil
}
