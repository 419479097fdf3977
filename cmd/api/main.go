package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/warehouse-api/internal/application/auth"
	"github.com/jhoicas/warehouse-api/internal/application/importer"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/application/report"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/audit"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/importsource"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/warehouse-api/internal/infrastructure/pdf"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/warehouse-api/internal/interfaces/http"
	"github.com/jhoicas/warehouse-api/internal/interfaces/ws"
	"github.com/jhoicas/warehouse-api/pkg/config"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// repos adaptadores de persistencia elegidos por STORAGE_DRIVER.
type repos struct {
	products     repository.ProductRepository
	warehouses   repository.WarehouseRepository
	items        repository.InventoryItemRepository
	transactions repository.TransactionRepository
	auditLogs    repository.AuditLogRepository
	txRunner     inventory.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var r repos
	switch cfg.Storage.Driver {
	case "memory":
		store := memory.NewStore()
		r = repos{
			products:     store.Products(),
			warehouses:   store.Warehouses(),
			items:        store.Items(),
			transactions: store.Transactions(),
			auditLogs:    store.AuditLogs(),
			txRunner:     store.TxRunner(),
		}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = postgresRepos(pool)
	}

	// Métricas: sin METRICS_ENABLED los casos de uso reciben un sink vacío.
	var metricsSink ports.MetricsSink = ports.NopMetrics{}
	var promSink *metrics.Sink
	if cfg.Metrics.Enabled {
		promSink = metrics.New(cfg.Metrics.Namespace)
		metricsSink = promSink
	}

	var auditRepo repository.AuditLogRepository
	if cfg.Audit.Persist {
		auditRepo = r.auditLogs
	}
	auditLogger := audit.New(log.Zerolog(), auditRepo)

	hub := ws.NewHub(log.Component("ws"))
	go hub.Run(ctx)

	invLog := log.Component("inventory")
	sinks := ports.Sinks{Audit: auditLogger, Metrics: metricsSink, Events: hub, Log: &invLog}

	inventoryUC := inventory.NewInventoryUseCase(r.txRunner, r.items, sinks)
	transactionUC := inventory.NewTransactionUseCase(r.txRunner, inventoryUC, r.transactions, sinks)
	productUC := usecase.NewProductUseCase(r.products, r.items, r.transactions, sinks)
	warehouseUC := usecase.NewWarehouseUseCase(r.warehouses, r.items, r.products, sinks)
	reportUC := report.NewReportUseCase(r.products, r.warehouses, r.items, r.transactions,
		infrapdf.NewMarotoRenderer(), xlsx.NewRenderer())

	importLog := log.Component("import")
	importUC := importer.NewUseCase(r.products, ports.Sinks{Audit: auditLogger, Metrics: metricsSink, Log: &importLog})

	authUC := auth.NewAuthUseCase(credentials(cfg.Auth, log), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auditLogger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(log.Component("http"), metricsSink),
	})
	app.Use(recover.New())
	if promSink != nil {
		app.Use(httpRouter.RequestMetrics(promSink))
		app.Get("/metrics", adaptor.HTTPHandler(promSink.Handler()))
	}

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el swagger.json generado)
	if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Warehouse API",
		}))
	} else {
		log.Debug().Str("file", cfg.Swagger.FilePath).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})
	app.Get("/ws/stock", ws.Upgrade, hub.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		WarehouseUC:   warehouseUC,
		InventoryUC:   inventoryUC,
		TransactionUC: transactionUC,
		ReportUC:      reportUC,
		AuthUC:        authUC,
		ImportUC:      importUC,
		ImportSources: httpRouter.ImportSources{
			DefaultDSN: cfg.Import.SourceDSN,
			Database:   importsource.Database,
			File:       importsource.Bytes,
		},
		JWTSecret: cfg.JWT.Secret,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func postgresRepos(pool *pgxpool.Pool) repos {
	return repos{
		products:     postgres.NewProductRepository(pool),
		warehouses:   postgres.NewWarehouseRepository(pool),
		items:        postgres.NewInventoryItemRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		auditLogs:    postgres.NewAuditLogRepository(pool),
		txRunner:     postgres.NewTxRunner(pool),
	}
}

// credentials usuarios ADMIN y USER de la configuración.
func credentials(cfg config.AuthConfig, log *logger.Logger) []auth.Credential {
	admin, err := auth.NewCredential(cfg.AdminUser, cfg.AdminPassword, cfg.AdminPasswordHash, auth.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("credencial admin")
	}
	user, err := auth.NewCredential(cfg.User, cfg.UserPassword, cfg.UserPasswordHash, auth.RoleUser)
	if err != nil {
		log.Fatal().Err(err).Msg("credencial user")
	}
	return []auth.Credential{admin, user}
}
