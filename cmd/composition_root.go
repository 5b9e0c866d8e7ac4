package cmd

import (
	"tracksaidas/internal/adapters/out/postgres"
	"tracksaidas/internal/adapters/out/postgres/pricingrepo"
	"tracksaidas/internal/adapters/out/postgres/reasonrepo"
	"tracksaidas/internal/adapters/out/rediscache"
	"tracksaidas/internal/core/application/usecases/commands"
	"tracksaidas/internal/core/application/usecases/queries"
	"tracksaidas/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	pricing    ports.PricingCatalog
	reasons    ports.AbsenceReasonCatalog
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, redisClient *redis.Client) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		pricing:    rediscache.NewPricingCache(redisClient, pricingrepo.NewGormPricingCatalog(gormDB), 0),
		reasons:    reasonrepo.NewGormAbsenceReasonCatalog(gormDB),
	}
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) billingUoWFactory() commands.BillingUoWFactory {
	return FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) closureUoWFactory() commands.ClosureUoWFactory {
	return FuncClosureUoWFactory(func() commands.ClosureUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateAttachAddressCommandHandler() commands.AttachAddressCommandHandler {
	return commands.NewAttachAddressCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateRemoveCourierCommandHandler() commands.RemoveCourierCommandHandler {
	return commands.NewRemoveCourierCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.billingUoWFactory(), c.pricing)
}

func (c *CompositionRoot) CreateMarkAbsentCommandHandler() commands.MarkAbsentCommandHandler {
	return commands.NewMarkAbsentCommandHandler(c.deliveryUoWFactory(), c.reasons)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.billingUoWFactory())
}

func (c *CompositionRoot) CreateStartSessionCommandHandler() commands.StartSessionCommandHandler {
	return commands.NewStartSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceSessionCommandHandler() commands.AdvanceSessionCommandHandler {
	return commands.NewAdvanceSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateFinishSessionCommandHandler() commands.FinishSessionCommandHandler {
	return commands.NewFinishSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateReorderStopsCommandHandler() commands.ReorderStopsCommandHandler {
	return commands.NewReorderStopsCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateOptimizeRouteCommandHandler() commands.OptimizeRouteCommandHandler {
	return commands.NewOptimizeRouteCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateGenerateClosureCommandHandler() commands.GenerateClosureCommandHandler {
	return commands.NewGenerateClosureCommandHandler(c.closureUoWFactory())
}

func (c *CompositionRoot) CreateGenerateClosuresCommandHandler() commands.GenerateClosuresCommandHandler {
	return commands.NewGenerateClosuresCommandHandler(c.closureUoWFactory())
}

func (c *CompositionRoot) CreateBackfillHistoryCommandHandler() commands.BackfillHistoryCommandHandler {
	return commands.NewBackfillHistoryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateReconcileSessionsCommandHandler() commands.ReconcileSessionsCommandHandler {
	return commands.NewReconcileSessionsCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateGetDeliveryHistoryQueryHandler() queries.GetDeliveryHistoryQueryHandler {
	return queries.NewGetDeliveryHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingDeliveriesQueryHandler() queries.GetPendingDeliveriesQueryHandler {
	return queries.NewGetPendingDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierDayQueryHandler() queries.GetCourierDayQueryHandler {
	return queries.NewGetCourierDayQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteStatsQueryHandler() queries.GetRouteStatsQueryHandler {
	return queries.NewGetRouteStatsQueryHandler(c.gormDB)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

type FuncClosureUoWFactory func() commands.ClosureUoW

func (f FuncClosureUoWFactory) Create() commands.ClosureUoW {
	return f()
}
