package cmd

import (
	"log/slog"

	httpin "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/ports"
	"laundry/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	publisher  ports.EventPublisher
	clock      commands.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		publisher:  publisher,
		clock:      commands.SystemClock,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) commissionUoWFactory() commands.CommissionUoWFactory {
	return FuncCommissionUoWFactory(func() commands.CommissionUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) providerUoWFactory() commands.ProviderUoWFactory {
	return FuncProviderUoWFactory(func() commands.ProviderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.dispatchUoWFactory(), c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.ledgerUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateAutoConfirmDeliveriesCommandHandler() commands.AutoConfirmDeliveriesCommandHandler {
	return commands.NewAutoConfirmDeliveriesCommandHandler(c.ledgerUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommissionsCommandHandler() commands.CreateOrderCommissionsCommandHandler {
	return commands.NewCreateOrderCommissionsCommandHandler(c.ledgerUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateSettleCommissionsCommandHandler() commands.SettleCommissionsCommandHandler {
	return commands.NewSettleCommissionsCommandHandler(c.commissionUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdatePayoutStatusCommandHandler() commands.UpdatePayoutStatusCommandHandler {
	return commands.NewUpdatePayoutStatusCommandHandler(c.ledgerUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateRegisterProviderCommandHandler() commands.RegisterProviderCommandHandler {
	return commands.NewRegisterProviderCommandHandler(c.providerUoWFactory())
}

func (c *CompositionRoot) CreateSetProviderAvailabilityCommandHandler() commands.SetProviderAvailabilityCommandHandler {
	return commands.NewSetProviderAvailabilityCommandHandler(c.providerUoWFactory())
}

// orderReader serves queries outside of a write transaction.
func (c *CompositionRoot) orderReader() queries.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetWalletQueryHandler() queries.GetWalletQueryHandler {
	return queries.NewGetWalletQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReadyCommissionsQueryHandler() queries.GetReadyCommissionsQueryHandler {
	return queries.NewGetReadyCommissionsQueryHandler(c.gormDB)
}

// HTTPHandlers wires every use case the API exposes.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:             c.CreateCreateOrderCommandHandler(),
		AssignOrder:             c.CreateAssignOrderCommandHandler(),
		AdvanceOrderStatus:      c.CreateAdvanceOrderStatusCommandHandler(),
		ConfirmDelivery:         c.CreateConfirmDeliveryCommandHandler(),
		CreateOrderCommissions:  c.CreateCreateOrderCommissionsCommandHandler(),
		UpdatePayoutStatus:      c.CreateUpdatePayoutStatusCommandHandler(),
		RegisterProvider:        c.CreateRegisterProviderCommandHandler(),
		SetProviderAvailability: c.CreateSetProviderAvailabilityCommandHandler(),

		GetOrder:            c.CreateGetOrderQueryHandler(),
		GetActiveOrders:     c.CreateGetActiveOrdersQueryHandler(),
		GetWallet:           c.CreateGetWalletQueryHandler(),
		GetReadyCommissions: c.CreateGetReadyCommissionsQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAutoConfirmDeliveriesCommandHandler(),
		c.CreateSettleCommissionsCommandHandler(),
		c.cfg.Jobs(),
		c.clock,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncCommissionUoWFactory func() commands.CommissionUoW

func (f FuncCommissionUoWFactory) Create() commands.CommissionUoW {
	return f()
}

type FuncProviderUoWFactory func() commands.ProviderUoW

func (f FuncProviderUoWFactory) Create() commands.ProviderUoW {
	return f()
}
