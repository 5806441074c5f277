package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zabal-art/zabal-hub/client"
	"github.com/zabal-art/zabal-hub/internal/config"
	"github.com/zabal-art/zabal-hub/internal/infra/database"
	"github.com/zabal-art/zabal-hub/internal/infra/gateway"
	"github.com/zabal-art/zabal-hub/internal/infra/repository"
	"github.com/zabal-art/zabal-hub/internal/interface/rest"
	"github.com/zabal-art/zabal-hub/internal/interface/rest/middleware"
	"github.com/zabal-art/zabal-hub/internal/service"
	"github.com/zabal-art/zabal-hub/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if conf.Server.EnableTrace {
		shutdown, err := setupTracer(conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("Failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("Failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.MigratePostgres(db); err != nil {
		slog.Error("Failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisDB)
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	neynarClient := client.New(conf.Neynar.BaseURL, conf.Neynar.APIKey)
	social := gateway.NewNeynarGateway(neynarClient)
	empire := gateway.NewEmpireGateway(
		conf.Empire.BaseURL,
		conf.Empire.APIKey,
		conf.Empire.PrivateKey,
		conf.Empire.TokenAddress,
	)

	signal := service.NewSignalService(rdb)
	auth := service.NewAuthService(conf.AppInfo.CronSecret)

	leaderboardRepo := repository.NewLeaderboardRepository(db, mc)
	notificationRepo := repository.NewNotificationRepository(db)

	votePower := usecase.NewVotePowerUsecase(social, conf.AppInfo.Channel)
	leaderboard := usecase.NewLeaderboardUsecase(leaderboardRepo, social, signal)
	sync := usecase.NewSyncUsecase(leaderboard, empire, signal)
	notification := usecase.NewNotificationUsecase(notificationRepo, social, conf.AppInfo.URL, signal)

	authMiddleware := middleware.NewAuthMiddleware(auth)
	handler := rest.NewHandler(votePower, leaderboard, sync, notification, signal, authMiddleware)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(conf.AppInfo.Name))
	}

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracer(endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
