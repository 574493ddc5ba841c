package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/configs"
	"github.com/bazario/fulfillment-service/domain"
	cart_service "github.com/bazario/fulfillment-service/domain/cart"
	cart_repository "github.com/bazario/fulfillment-service/domain/models/repository/cart"
	coupon_repository "github.com/bazario/fulfillment-service/domain/models/repository/coupon"
	order_repository "github.com/bazario/fulfillment-service/domain/models/repository/order"
	return_repository "github.com/bazario/fulfillment-service/domain/models/repository/returnorder"
	"github.com/bazario/fulfillment-service/domain/returnflow"
	applog "github.com/bazario/fulfillment-service/infrastructure/logger"
	address_service "github.com/bazario/fulfillment-service/infrastructure/services/address"
	notify_service "github.com/bazario/fulfillment-service/infrastructure/services/notification"
	payment_service "github.com/bazario/fulfillment-service/infrastructure/services/payment"
	uploader_service "github.com/bazario/fulfillment-service/infrastructure/services/uploader"
	"github.com/bazario/fulfillment-service/infrastructure/utils/calculate"
	http_server "github.com/bazario/fulfillment-service/server/http"
)

var MainApp struct {
	flowManager domain.IFlowManager
	cartService cart_service.ICartService
	returnFlow  returnflow.IReturnFlow
	httpServer  *http_server.Server
}

func main() {
	var err error
	if os.Getenv("APP_ENV") == "dev" {
		app.Globals.Config, err = configs.LoadConfig("./testdata/.env")
	} else {
		app.Globals.Config, err = configs.LoadConfig("")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "LoadConfig failed, error: %s\n", err.Error())
		os.Exit(1)
	}

	app.Globals.ZapLogger = applog.InitZap()
	app.Globals.Logger = app.Globals.ZapLogger.Sugar()
	defer app.Globals.ZapLogger.Sync()

	app.Globals.MongoClient, err = app.SetupMongoClient(app.Globals.Config)
	if err != nil {
		app.Globals.Logger.Fatalw("SetupMongoClient failed", "config", app.Globals.Config.Mongo, "error", err)
	}
	app.Globals.MongoDatabase = app.Globals.MongoClient.Database(app.Globals.Config.Mongo.Database)

	app.Globals.RedisClient, err = app.SetupRedisClient(app.Globals.Config)
	if err != nil {
		app.Globals.Logger.Fatalw("SetupRedisClient failed", "config", app.Globals.Config.Redis, "error", err)
	}

	app.Globals.OrderRepository, err = order_repository.NewOrderRepository(app.Globals.MongoDatabase)
	if err != nil {
		app.Globals.Logger.Fatalw("order repository creation failed", "error", err)
	}
	app.Globals.ReturnRepository, err = return_repository.NewReturnRepository(app.Globals.MongoDatabase)
	if err != nil {
		app.Globals.Logger.Fatalw("return repository creation failed", "error", err)
	}
	app.Globals.CouponRepository, err = coupon_repository.NewCouponRepository(app.Globals.MongoDatabase)
	if err != nil {
		app.Globals.Logger.Fatalw("coupon repository creation failed", "error", err)
	}
	app.Globals.CartRepository = cart_repository.NewCartRepository(app.Globals.RedisClient,
		time.Duration(app.Globals.Config.App.CartTTLHours)*time.Hour)

	app.Globals.PricingCalculator, err = calculate.New(calculate.PricingConfig{
		Currency:              app.Globals.Config.App.Currency,
		DeliveryFee:           app.Globals.Config.App.DeliveryFee,
		FreeDeliveryThreshold: app.Globals.Config.App.FreeDeliveryThreshold,
		TaxPercent:            app.Globals.Config.App.TaxPercent,
	})
	if err != nil {
		app.Globals.Logger.Fatalw("pricing calculator creation failed", "error", err)
	}

	serviceTimeout := time.Duration(app.Globals.Config.App.ServiceTimeoutSecond) * time.Second
	if app.Globals.Config.PaymentGatewayService.MockEnabled {
		app.Globals.PaymentService = payment_service.NewPaymentServiceMock()
	} else {
		app.Globals.PaymentService = payment_service.NewPaymentService(
			app.Globals.Config.PaymentGatewayService.URL,
			app.Globals.Config.PaymentGatewayService.APIKey,
			serviceTimeout, app.Globals.Logger)
	}
	if app.Globals.Config.NotifyService.MockEnabled {
		app.Globals.NotifyService = notify_service.NewNotificationServiceMock()
	} else {
		app.Globals.NotifyService = notify_service.NewNotificationService(
			app.Globals.Config.NotifyService.URL, serviceTimeout, app.Globals.Logger)
	}
	app.Globals.UploaderService = uploader_service.NewUploaderService(
		strings.Split(app.Globals.Config.UploaderService.AllowedHosts, ","))
	app.Globals.AddressService = address_service.NewAddressServiceMock()

	MainApp.flowManager, err = domain.NewFlowManager()
	if err != nil {
		app.Globals.Logger.Fatalw("flowManager creation failed", "error", err)
	}
	MainApp.cartService = cart_service.NewCartService(app.Globals.CartRepository,
		app.Globals.CouponRepository, app.Globals.PricingCalculator, app.Globals.Logger)
	MainApp.returnFlow = returnflow.New(app.Globals.OrderRepository, app.Globals.ReturnRepository,
		app.Globals.UploaderService, app.Globals.NotifyService,
		app.Globals.Config.App.MaxEvidenceImages, app.Globals.Config.App.MinReasonLength,
		app.Globals.Logger)

	MainApp.httpServer = http_server.New(app.Globals.Config, MainApp.flowManager,
		MainApp.cartService, MainApp.returnFlow)

	address := fmt.Sprintf("%s:%d", app.Globals.Config.HTTPServer.Address, app.Globals.Config.HTTPServer.Port)
	go func() {
		app.Globals.Logger.Infow("http server starting", "address", address)
		if err := MainApp.httpServer.Start(address); err != nil {
			app.Globals.Logger.Infow("http server stopped", "error", err)
		}
	}()

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-signalCtx.Done()
	app.Globals.Logger.Infow("shutdown signal received")

	drainCtx, drainCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer drainCancel()
	if err := MainApp.httpServer.Shutdown(drainCtx); err != nil {
		app.Globals.Logger.Errorw("http server shutdown failed", "error", err)
	}
	if err := app.Globals.MongoClient.Disconnect(drainCtx); err != nil {
		app.Globals.Logger.Errorw("mongo disconnect failed", "error", err)
	}
	if err := app.Globals.RedisClient.Close(); err != nil {
		app.Globals.Logger.Errorw("redis close failed", "error", err)
	}
}
