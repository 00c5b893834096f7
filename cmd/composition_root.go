package cmd

import (
	"log/slog"
	"os"
	"strings"

	"gorm.io/gorm"

	"rental/internal/adapters/out/kafka"
	"rental/internal/adapters/out/postgres"
	"rental/internal/core/application/usecases/commands"
	"rental/internal/core/application/usecases/queries"
	"rental/internal/core/domain/services"
	"rental/internal/notifications"
)

const notificationQueueCapacity = 256

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	machine    services.StatusMachine
	dispatcher *notifications.Dispatcher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	policy := services.StrictPolicy()
	if config.StatusPolicyMode == "permissive" {
		policy = services.PermissivePolicy()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	publisher := kafka.NewStatusNotificationPublisher(
		strings.Split(config.KafkaHost, ","), config.KafkaNotificationTopic)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		machine:    services.NewStatusMachine(policy),
		dispatcher: notifications.NewDispatcher(publisher, logger, notificationQueueCapacity),
	}
}

// Dispatcher exposes the notification worker so main can manage its lifecycle.
func (c *CompositionRoot) Dispatcher() *notifications.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.machine, c.dispatcher)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateDeactivateExpiredCouponsCommandHandler() commands.DeactivateExpiredCouponsCommandHandler {
	var f commands.CouponUoWFactory = FuncCouponUoWFactory(func() commands.CouponUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeactivateExpiredCouponsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetDeliveryQueueQueryHandler() queries.GetDeliveryQueueQueryHandler {
	return queries.NewGetDeliveryQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusHistoryQueryHandler() queries.GetStatusHistoryQueryHandler {
	return queries.NewGetStatusHistoryQueryHandler(c.gormDB)
}

type FuncCouponUoWFactory func() commands.CouponUoW

func (f FuncCouponUoWFactory) Create() commands.CouponUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncStatusUoWFactory func() commands.StatusUoW

func (f FuncStatusUoWFactory) Create() commands.StatusUoW {
	return f()
}
