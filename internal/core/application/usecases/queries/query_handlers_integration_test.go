package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/historyrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/orderrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/scanrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/tierrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/queries"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/pricing"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

type QueryHandlersTestSuite struct {
	suite.Suite
	container  *pgcontainer.PostgresContainer
	db         *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
}

func (s *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&scanrepo.EventDTO{},
		&historyrepo.HistoryDTO{},
		&tierrepo.TierDTO{},
	)
	s.Require().NoError(err)

	s.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
}

func (s *QueryHandlersTestSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *QueryHandlersTestSuite) SetupTest() {
	for _, table := range []string{"order_status_history", "scan_events", "order_items", "orders", "pricing_tiers"} {
		s.Require().NoError(s.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error)
	}
}

// savedOrder persists a Draft order with one line of the given quantity.
func (s *QueryHandlersTestSuite) savedOrder(quantity int) *order.Order {
	venue, err := order.NewVenue("Expo Hall", "12 Fair St", "", "")
	s.Require().NoError(err)

	item, err := order.NewItem(kernel.NewUUID(), quantity, "furniture", "bar stools", nil)
	s.Require().NoError(err)

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	ord, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, venue,
		start, start.AddDate(0, 0, 3), []order.Item{item})
	s.Require().NoError(err)

	uow := s.uowFactory.Create()
	s.Require().NoError(uow.OrderRepository().Add(context.Background(), ord))
	return ord
}

func (s *QueryHandlersTestSuite) savedScan(orderID kernel.UUID, direction scan.Direction, quantity int, at time.Time) {
	event, err := scan.NewEvent(kernel.NewUUID(), orderID, direction, quantity, kernel.NewUUID(), at)
	s.Require().NoError(err)

	uow := s.uowFactory.Create()
	s.Require().NoError(uow.ScanRepository().Add(context.Background(), event))
}

func (s *QueryHandlersTestSuite) savedHistory(orderID kernel.UUID, status order.Status, note string, at time.Time) {
	entry, err := order.NewHistoryEntry(kernel.NewUUID(), orderID, status, kernel.NewUUID(), note, at)
	s.Require().NoError(err)

	uow := s.uowFactory.Create()
	s.Require().NoError(uow.HistoryRepository().Append(context.Background(), entry))
}

func (s *QueryHandlersTestSuite) savedTier(country, city string, volumeMin, volumeMax int, basePrice string) {
	tier, err := pricing.NewTier(kernel.NewUUID(), country, city, volumeMin, volumeMax,
		decimal.RequireFromString(basePrice))
	s.Require().NoError(err)

	uow := s.uowFactory.Create()
	s.Require().NoError(uow.TierRepository().Add(context.Background(), tier))
}

func (s *QueryHandlersTestSuite) TestGetOrderHistory_ReturnsRowsInRecordedOrder() {
	ord := s.savedOrder(5)
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	s.savedHistory(ord.ID(), order.Submitted, "", base)
	s.savedHistory(ord.ID(), order.PricingReview, "", base.Add(time.Hour))
	s.savedHistory(ord.ID(), order.PendingApproval, "volume exceeds bracket", base.Add(2*time.Hour))
	s.savedHistory(kernel.NewUUID(), order.Submitted, "", base) // other order

	query, err := queries.NewGetOrderHistoryQuery(ord.ID())
	s.Require().NoError(err)

	rows, err := queries.NewGetOrderHistoryQueryHandler(s.db).Handle(context.Background(), query)

	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal(order.Submitted, rows[0].Status)
	s.Equal(order.PricingReview, rows[1].Status)
	s.Equal(order.PendingApproval, rows[2].Status)
	s.Equal("volume exceeds bracket", rows[2].Note)
	s.True(rows[1].OrderID.IsEqual(ord.ID()))
}

func (s *QueryHandlersTestSuite) TestGetOrderHistory_EmptyForUnknownOrder() {
	query, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
	s.Require().NoError(err)

	rows, err := queries.NewGetOrderHistoryQueryHandler(s.db).Handle(context.Background(), query)

	s.Require().NoError(err)
	s.NotNil(rows)
	s.Empty(rows)
}

func (s *QueryHandlersTestSuite) TestEvaluateScanGate_ReportsShortfallThenSatisfied() {
	ord := s.savedOrder(5)
	now := time.Now().UTC()
	s.savedScan(ord.ID(), scan.Outbound, 3, now)
	handler := queries.NewEvaluateScanGateQueryHandler(s.db)

	query, err := queries.NewEvaluateScanGateQuery(ord.ID(), scan.Outbound)
	s.Require().NoError(err)

	gate, err := handler.Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Equal(5, gate.Required)
	s.Equal(3, gate.Scanned)
	s.False(gate.Satisfied)
	s.Equal(2, gate.Shortfall)

	s.savedScan(ord.ID(), scan.Outbound, 2, now.Add(time.Minute))

	gate, err = handler.Handle(context.Background(), query)
	s.Require().NoError(err)
	s.True(gate.Satisfied)
	s.False(gate.OverScanned)
	s.Zero(gate.Shortfall)
}

func (s *QueryHandlersTestSuite) TestEvaluateScanGate_CountsOnlyRequestedDirection() {
	ord := s.savedOrder(5)
	now := time.Now().UTC()
	s.savedScan(ord.ID(), scan.Outbound, 5, now)
	s.savedScan(ord.ID(), scan.Inbound, 2, now.Add(time.Minute))

	query, err := queries.NewEvaluateScanGateQuery(ord.ID(), scan.Inbound)
	s.Require().NoError(err)

	gate, err := queries.NewEvaluateScanGateQueryHandler(s.db).Handle(context.Background(), query)

	s.Require().NoError(err)
	s.Equal(2, gate.Scanned)
	s.False(gate.Satisfied)
	s.Equal(3, gate.Shortfall)
}

func (s *QueryHandlersTestSuite) TestEvaluateScanGate_UnknownOrderReturnsNotFound() {
	query, err := queries.NewEvaluateScanGateQuery(kernel.NewUUID(), scan.Outbound)
	s.Require().NoError(err)

	_, err = queries.NewEvaluateScanGateQueryHandler(s.db).Handle(context.Background(), query)

	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QueryHandlersTestSuite) TestFindMatchingTier_MatchesCaseInsensitivelyOnInclusiveRange() {
	s.savedTier("Netherlands", "Amsterdam", 0, 50, "1200.00")
	s.savedTier("Netherlands", "Amsterdam", 51, 200, "2400.00")
	handler := queries.NewFindMatchingTierQueryHandler(s.db)

	query, err := queries.NewFindMatchingTierQuery("netherlands", "AMSTERDAM", 50)
	s.Require().NoError(err)

	tier, err := handler.Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Equal("Netherlands", tier.Country)
	s.Equal(0, tier.VolumeMin)
	s.Equal("1200.00", tier.BasePrice.StringFixed(2))

	query, err = queries.NewFindMatchingTierQuery("netherlands", "amsterdam", 51)
	s.Require().NoError(err)

	tier, err = handler.Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Equal("2400.00", tier.BasePrice.StringFixed(2))
}

func (s *QueryHandlersTestSuite) TestFindMatchingTier_NoMatchReturnsNotFound() {
	s.savedTier("Netherlands", "Amsterdam", 0, 50, "1200.00")

	query, err := queries.NewFindMatchingTierQuery("Netherlands", "Rotterdam", 10)
	s.Require().NoError(err)

	_, err = queries.NewFindMatchingTierQueryHandler(s.db).Handle(context.Background(), query)

	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QueryHandlersTestSuite) TestEstimateQuote_AppliesDefaultAndExplicitMargins() {
	s.savedTier("Netherlands", "Amsterdam", 0, 50, "1000.00")
	handler := queries.NewEstimateQuoteQueryHandler(s.db)

	query, err := queries.NewEstimateQuoteQuery("Netherlands", "Amsterdam", 25, nil)
	s.Require().NoError(err)

	estimate, err := handler.Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Equal("1000.00", estimate.BasePrice.StringFixed(2))
	s.Equal("25.00", estimate.MarginPercent.StringFixed(2))
	s.Equal("250.00", estimate.MarginAmount.StringFixed(2))
	s.Equal("1250.00", estimate.Total.StringFixed(2))

	margin := decimal.NewFromInt(10)
	query, err = queries.NewEstimateQuoteQuery("Netherlands", "Amsterdam", 25, &margin)
	s.Require().NoError(err)

	estimate, err = handler.Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Equal("100.00", estimate.MarginAmount.StringFixed(2))
	s.Equal("1100.00", estimate.Total.StringFixed(2))
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
