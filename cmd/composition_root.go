package cmd

import (
	"log/slog"

	httpin "foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	evaluator  services.CouponEvaluator
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		evaluator:  services.NewCouponEvaluator(),
	}
}

func (c *CompositionRoot) couponUoWFactory() commands.CouponUoWFactory {
	return FuncCouponUoWFactory(func() commands.CouponUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) partnerUoWFactory() commands.PartnerUoWFactory {
	return FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateCreateCouponCommandHandler() commands.CreateCouponCommandHandler {
	return commands.NewCreateCouponCommandHandler(c.couponUoWFactory())
}

func (c *CompositionRoot) CreateDeactivateCouponCommandHandler() commands.DeactivateCouponCommandHandler {
	return commands.NewDeactivateCouponCommandHandler(c.couponUoWFactory())
}

func (c *CompositionRoot) CreateCommitCouponCommandHandler() commands.CommitCouponCommandHandler {
	return commands.NewCommitCouponCommandHandler(c.couponUoWFactory())
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.evaluator)
}

func (c *CompositionRoot) CreateCreatePartnerCommandHandler() commands.CreatePartnerCommandHandler {
	return commands.NewCreatePartnerCommandHandler(c.partnerUoWFactory())
}

func (c *CompositionRoot) CreateSetPartnerAvailabilityCommandHandler() commands.SetPartnerAvailabilityCommandHandler {
	return commands.NewSetPartnerAvailabilityCommandHandler(c.partnerUoWFactory())
}

func (c *CompositionRoot) CreateCreateAssignmentCommandHandler() commands.CreateAssignmentCommandHandler {
	return commands.NewCreateAssignmentCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateTransitionAssignmentCommandHandler() commands.TransitionAssignmentCommandHandler {
	return commands.NewTransitionAssignmentCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateRecordTipCommandHandler() commands.RecordTipCommandHandler {
	return commands.NewRecordTipCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateRateDeliveryCommandHandler() commands.RateDeliveryCommandHandler {
	return commands.NewRateDeliveryCommandHandler(c.dispatchUoWFactory())
}

// Reads outside a transaction never register aggregates, so one repository
// instance can serve every evaluation.
func (c *CompositionRoot) CreateEvaluateCouponQueryHandler() queries.EvaluateCouponQueryHandler {
	return queries.NewEvaluateCouponQueryHandler(c.uowFactory.CreateGorm().CouponRepository(), c.evaluator)
}

func (c *CompositionRoot) CreateGetAllPartnersQueryHandler() queries.GetAllPartnersQueryHandler {
	return queries.NewGetAllPartnersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveAssignmentsQueryHandler() queries.GetActiveAssignmentsQueryHandler {
	return queries.NewGetActiveAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleAssignmentsQueryHandler() queries.GetStaleAssignmentsQueryHandler {
	return queries.NewGetStaleAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateCoupon:     c.CreateCreateCouponCommandHandler(),
		DeactivateCoupon: c.CreateDeactivateCouponCommandHandler(),
		EvaluateCoupon:   c.CreateEvaluateCouponQueryHandler(),
		CommitCoupon:     c.CreateCommitCouponCommandHandler(),

		PlaceOrder: c.CreatePlaceOrderCommandHandler(),

		CreatePartner:          c.CreateCreatePartnerCommandHandler(),
		SetPartnerAvailability: c.CreateSetPartnerAvailabilityCommandHandler(),
		GetAllPartners:         c.CreateGetAllPartnersQueryHandler(),

		CreateAssignment:     c.CreateCreateAssignmentCommandHandler(),
		GetActiveAssignments: c.CreateGetActiveAssignmentsQueryHandler(),
		TransitionAssignment: c.CreateTransitionAssignmentCommandHandler(),
		RecordTip:            c.CreateRecordTipCommandHandler(),
		RateDelivery:         c.CreateRateDeliveryCommandHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager(config Config, logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStaleAssignmentsQueryHandler(),
		c.CreateTransitionAssignmentCommandHandler(),
		jobs.StaleAssignmentConfig{
			Schedule:  config.StaleAssignmentSchedule,
			After:     config.StaleAssignmentAfter,
			BatchSize: config.StaleAssignmentBatchSize,
		},
		logger,
	)
}

type FuncCouponUoWFactory func() commands.CouponUoW

func (f FuncCouponUoWFactory) Create() commands.CouponUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}
