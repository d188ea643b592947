package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/commands"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/queries"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// SchedulerSecretHeader authenticates manual scheduled-run requests. The same
// sweep also fires hourly from cron without going through HTTP.
const SchedulerSecretHeader = "X-Scheduler-Secret"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	transitionHandler     commands.TransitionOrderCommandHandler
	adjustPricingHandler  commands.AdjustPricingCommandHandler
	approvePricingHandler commands.ApprovePricingCommandHandler
	recordScanHandler     commands.RecordScanCommandHandler
	scheduledRunHandler   commands.RunScheduledTransitionsCommandHandler

	// Query handlers
	orderHistoryHandler queries.GetOrderHistoryQueryHandler
	scanGateHandler     queries.EvaluateScanGateQueryHandler
	matchTierHandler    queries.FindMatchingTierQueryHandler
	estimateHandler     queries.EstimateQuoteQueryHandler

	schedulerSecret string
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionHandler commands.TransitionOrderCommandHandler,
	adjustPricingHandler commands.AdjustPricingCommandHandler,
	approvePricingHandler commands.ApprovePricingCommandHandler,
	recordScanHandler commands.RecordScanCommandHandler,
	scheduledRunHandler commands.RunScheduledTransitionsCommandHandler,
	orderHistoryHandler queries.GetOrderHistoryQueryHandler,
	scanGateHandler queries.EvaluateScanGateQueryHandler,
	matchTierHandler queries.FindMatchingTierQueryHandler,
	estimateHandler queries.EstimateQuoteQueryHandler,
	schedulerSecret string,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		transitionHandler:     transitionHandler,
		adjustPricingHandler:  adjustPricingHandler,
		approvePricingHandler: approvePricingHandler,
		recordScanHandler:     recordScanHandler,
		scheduledRunHandler:   scheduledRunHandler,
		orderHistoryHandler:   orderHistoryHandler,
		scanGateHandler:       scanGateHandler,
		matchTierHandler:      matchTierHandler,
		estimateHandler:       estimateHandler,
		schedulerSecret:       schedulerSecret,
	}
}

// RegisterRoutes mounts one route per operation under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/:orderID/transition", s.TransitionOrder)
	v1.POST("/orders/:orderID/pricing/adjust", s.AdjustPricing)
	v1.POST("/orders/:orderID/pricing/approve", s.ApprovePricing)
	v1.POST("/orders/:orderID/scans", s.RecordScan)
	v1.GET("/orders/:orderID/history", s.GetOrderHistory)
	v1.GET("/orders/:orderID/scan-gate", s.EvaluateScanGate)

	v1.GET("/pricing/tiers/match", s.FindMatchingTier)
	v1.GET("/pricing/estimate", s.EstimateQuote)

	v1.POST("/scheduled-transitions/run", s.RunScheduledTransitions)
}

// CreateOrder handles POST /api/v1/orders - registers a new rental order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	companyID, err := kernel.UUIDFromString(request.CompanyID)
	if err != nil {
		return badRequest(ctx, "Invalid company id: "+err.Error())
	}

	var brandID *kernel.UUID
	if request.BrandID != nil {
		id, brandErr := kernel.UUIDFromString(*request.BrandID)
		if brandErr != nil {
			return badRequest(ctx, "Invalid brand id: "+brandErr.Error())
		}
		brandID = &id
	}

	venue, err := order.NewVenue(
		request.Venue.Name, request.Venue.Address,
		request.Venue.ContactName, request.Venue.ContactPhone)
	if err != nil {
		return badRequest(ctx, "Invalid venue: "+err.Error())
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, line := range request.Items {
		var assetID *kernel.UUID
		if line.AssetID != nil {
			id, assetErr := kernel.UUIDFromString(*line.AssetID)
			if assetErr != nil {
				return badRequest(ctx, "Invalid asset id: "+assetErr.Error())
			}
			assetID = &id
		}

		item, itemErr := order.NewItem(kernel.NewUUID(), line.Quantity, line.Category, line.Description, assetID)
		if itemErr != nil {
			return badRequest(ctx, "Invalid item: "+itemErr.Error())
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), companyID, brandID, venue,
		request.EventStartDate, request.EventEndDate, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// TransitionOrder handles POST /api/v1/orders/{orderID}/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request TransitionOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.TargetStatus)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actorID, request.Note)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	updated, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// AdjustPricing handles POST /api/v1/orders/{orderID}/pricing/adjust.
func (s *Server) AdjustPricing(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request AdjustPricingRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id: "+err.Error())
	}

	cmd, err := commands.NewAdjustPricingCommand(orderID, request.AdjustedPrice, request.Reason, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid adjustment data: "+err.Error())
	}

	updated, err := s.adjustPricingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// ApprovePricing handles POST /api/v1/orders/{orderID}/pricing/approve.
func (s *Server) ApprovePricing(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request ApprovePricingRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id: "+err.Error())
	}

	cmd, err := commands.NewApprovePricingCommand(
		orderID, request.BasePrice, request.MarginPercent, actorID, request.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid approval data: "+err.Error())
	}

	updated, err := s.approvePricingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// RecordScan handles POST /api/v1/orders/{orderID}/scans.
func (s *Server) RecordScan(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request RecordScanRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	direction, err := scan.DirectionFromString(request.Direction)
	if err != nil {
		return badRequest(ctx, "Invalid direction: "+err.Error())
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id: "+err.Error())
	}

	cmd, err := commands.NewRecordScanCommand(orderID, direction, request.Quantity, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid scan data: "+err.Error())
	}

	event, err := s.recordScanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toScanEventResponse(event))
}

// GetOrderHistory handles GET /api/v1/orders/{orderID}/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	rows, err := s.orderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toHistoryResponse(rows))
}

// EvaluateScanGate handles GET /api/v1/orders/{orderID}/scan-gate.
// The result is advisory: transitions recompute the gate transactionally.
func (s *Server) EvaluateScanGate(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	direction, err := scan.DirectionFromString(ctx.QueryParam("direction"))
	if err != nil {
		return badRequest(ctx, "Invalid direction: "+err.Error())
	}

	query, err := queries.NewEvaluateScanGateQuery(orderID, direction)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	gate, err := s.scanGateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ScanGateResponse{
		OrderID:     gate.OrderID.String(),
		Direction:   gate.Direction.String(),
		Required:    gate.Required,
		Scanned:     gate.Scanned,
		Satisfied:   gate.Satisfied,
		OverScanned: gate.OverScanned,
		Shortfall:   gate.Shortfall,
	})
}

// FindMatchingTier handles GET /api/v1/pricing/tiers/match.
func (s *Server) FindMatchingTier(ctx echo.Context) error {
	volume, err := queryVolume(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewFindMatchingTierQuery(
		ctx.QueryParam("country"), ctx.QueryParam("city"), volume)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	tier, err := s.matchTierHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TierResponse{
		ID:        tier.ID.String(),
		Country:   tier.Country,
		City:      tier.City,
		VolumeMin: tier.VolumeMin,
		VolumeMax: tier.VolumeMax,
		BasePrice: tier.BasePrice,
	})
}

// EstimateQuote handles GET /api/v1/pricing/estimate.
func (s *Server) EstimateQuote(ctx echo.Context) error {
	volume, err := queryVolume(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var marginPercent *decimal.Decimal
	if raw := ctx.QueryParam("margin_percent"); raw != "" {
		margin, marginErr := decimal.NewFromString(raw)
		if marginErr != nil {
			return badRequest(ctx, "Invalid margin percent: "+marginErr.Error())
		}
		marginPercent = &margin
	}

	query, err := queries.NewEstimateQuoteQuery(
		ctx.QueryParam("country"), ctx.QueryParam("city"), volume, marginPercent)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	estimate, err := s.estimateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, EstimateResponse{
		BasePrice:     estimate.BasePrice,
		MarginPercent: estimate.MarginPercent,
		MarginAmount:  estimate.MarginAmount,
		Total:         estimate.Total,
	})
}

// RunScheduledTransitions handles POST /api/v1/scheduled-transitions/run.
// Requires the shared scheduler secret; cron fires the same sweep hourly.
func (s *Server) RunScheduledTransitions(ctx echo.Context) error {
	secret := ctx.Request().Header.Get(SchedulerSecretHeader)
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.schedulerSecret)) != 1 {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Invalid scheduler secret",
		})
	}

	transitioned, err := s.scheduledRunHandler.Handle(ctx.Request().Context(), time.Now().UTC())
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ScheduledRunResponse{Transitioned: transitioned})
}

func pathOrderID(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return kernel.UUID{}, errors.New("invalid order id: " + err.Error())
	}
	return id, nil
}

func queryVolume(ctx echo.Context) (int, error) {
	volume, err := strconv.Atoi(ctx.QueryParam("volume"))
	if err != nil {
		return 0, errors.New("invalid volume: " + err.Error())
	}
	return volume, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// problem maps domain and application errors onto HTTP statuses. Validation
// failures are the caller's fault, missing aggregates are 404, and both
// transition rejections and optimistic-lock conflicts are 409 so clients know
// a retry against fresh state may succeed.
func problem(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrGuardNotSatisfied),
		errors.Is(err, errs.ErrConcurrencyConflict):
		status = http.StatusConflict
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
