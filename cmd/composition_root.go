package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/notifier"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/notificationrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/commands"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/queries"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/services"
)

// CompositionRoot wires adapters to use cases. It owns the shared
// infrastructure: the database handle, the unit-of-work factory and the
// notification dispatcher.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher *notifier.Dispatcher
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph. The dispatcher is constructed
// but not started; the caller starts and stops it with the process.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	logger *slog.Logger,
) (CompositionRoot, error) {
	sender, err := notifier.NewKafkaSender(config.KafkaHost, config.KafkaOrderEventTopic)
	if err != nil {
		return CompositionRoot{}, err
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	dispatcher, err := notifier.NewDispatcher(
		sender,
		notificationrepo.NewGormNotificationRepository(gormDB),
		logger,
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

// Dispatcher exposes the notification dispatcher for lifecycle management
// and the requeue job.
func (c *CompositionRoot) Dispatcher() *notifier.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, services.NewScanReconciler(), c.dispatcher)
}

func (c *CompositionRoot) CreateAdjustPricingCommandHandler() commands.AdjustPricingCommandHandler {
	var f commands.PricingUoWFactory = FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdjustPricingCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateApprovePricingCommandHandler() commands.ApprovePricingCommandHandler {
	var f commands.PricingUoWFactory = FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApprovePricingCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateRecordScanCommandHandler() commands.RecordScanCommandHandler {
	var f commands.ScanUoWFactory = FuncScanUoWFactory(func() commands.ScanUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordScanCommandHandler(f)
}

func (c *CompositionRoot) CreateRunScheduledTransitionsCommandHandler() commands.RunScheduledTransitionsCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRunScheduledTransitionsCommandHandler(f, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateEvaluateScanGateQueryHandler() queries.EvaluateScanGateQueryHandler {
	return queries.NewEvaluateScanGateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFindMatchingTierQueryHandler() queries.FindMatchingTierQueryHandler {
	return queries.NewFindMatchingTierQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateEstimateQuoteQueryHandler() queries.EstimateQuoteQueryHandler {
	return queries.NewEstimateQuoteQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPricingUoWFactory func() commands.PricingUoW

func (f FuncPricingUoWFactory) Create() commands.PricingUoW {
	return f()
}

type FuncTransitionUoWFactory func() commands.TransitionUoW

func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

type FuncScanUoWFactory func() commands.ScanUoW

func (f FuncScanUoWFactory) Create() commands.ScanUoW {
	return f()
}
