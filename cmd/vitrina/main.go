package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"vitrina/config"
	"vitrina/internal/delivery"
	"vitrina/internal/delivery/http"
	"vitrina/internal/delivery/http/middleware"
	"vitrina/internal/delivery/http/router/handler"
	"vitrina/internal/delivery/worker"
	"vitrina/internal/infra/auth"
	logs "vitrina/internal/infra/log"
	"vitrina/internal/infra/persistence"
	"vitrina/internal/infra/pubsub"
	"vitrina/internal/infra/qrcode"
	"vitrina/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		persistence.Module,
		pubsub.Module,
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewDataService,
			impl.NewMerchantService,
			impl.NewBusinessService,
			impl.NewPublicUserService,
			impl.NewDirectoryService,
			impl.NewPaymentService,
			impl.NewAnalyticsService,
			impl.NewChatService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewDataHandler,
			handler.NewMerchantHandler,
			handler.NewBusinessHandler,
			handler.NewPublicUserHandler,
			handler.NewDirectoryHandler,
			handler.NewPaymentHandler,
			handler.NewAnalyticsHandler,
			handler.NewChatHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewAdSweeper,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
