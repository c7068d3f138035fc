package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/tu-usuario/procurement-core/internal/application/analytics"
	appinventory "github.com/tu-usuario/procurement-core/internal/application/inventory"
	"github.com/tu-usuario/procurement-core/internal/application/requisition"
	"github.com/tu-usuario/procurement-core/internal/application/suggestion"
	"github.com/tu-usuario/procurement-core/internal/domain/procurement"
	infracache "github.com/tu-usuario/procurement-core/internal/infrastructure/cache"
	"github.com/tu-usuario/procurement-core/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/procurement-core/internal/interfaces/http"
	"github.com/tu-usuario/procurement-core/pkg/config"
	"github.com/tu-usuario/procurement-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	skuRepo := postgres.NewSKURepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	reqRepo := postgres.NewRequisitionRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	snapshotSvc := appinventory.NewSnapshotService(skuRepo, warehouseRepo, batchRepo)
	pricingSvc := appinventory.NewPricingService(supplierRepo)

	policy := procurement.Policy{
		SafetyStockFraction:   cfg.Engine.SafetyStockFraction,
		MediumThresholdFactor: cfg.Engine.MediumThresholdFactor,
		ReorderTargetFactor:   cfg.Engine.ReorderTargetFactor,
	}
	cuts := procurement.ABCCuts{CutA: cfg.Engine.ABCCutA, CutB: cfg.Engine.ABCCutB}
	weights := procurement.RatingWeights{
		OnTimeWeight:       cfg.Engine.RatingOnTimeWeight,
		LeadTimeWeight:     cfg.Engine.RatingLeadTimeWeight,
		LeadTimeTargetDays: cfg.Engine.RatingLeadTimeTarget,
	}

	converter := requisition.NewConverter(pricingSvc, supplierRepo, txRunner, log, cfg.Engine.SuggestionWorkers)
	reportCache, err := infracache.NewReportCache(cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("cache de reportes")
	}
	requisitionUC := requisition.NewUseCase(reqRepo, skuRepo, warehouseRepo, converter, reportCache, cfg.Engine.StoreTimeout)
	suggestionUC := suggestion.NewUseCase(
		snapshotSvc, pricingSvc, skuRepo, reqRepo, requisitionUC,
		reportCache, policy, log, cfg.Engine.SuggestionWorkers,
	)
	analyticsUC := appanalytics.NewUseCase(analyticsRepo, batchRepo, cuts, weights)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Procurement Core API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RequisitionUC: requisitionUC,
		SuggestionUC:  suggestionUC,
		AnalyticsUC:   analyticsUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
