package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/tesoreria-api/internal/application/auth"
	"github.com/tu-usuario/tesoreria-api/internal/application/authz"
	appfact "github.com/tu-usuario/tesoreria-api/internal/application/facturacion"
	"github.com/tu-usuario/tesoreria-api/internal/application/session"
	"github.com/tu-usuario/tesoreria-api/internal/application/socios"
	"github.com/tu-usuario/tesoreria-api/internal/application/tesoreria"
	infrafact "github.com/tu-usuario/tesoreria-api/internal/infrastructure/facturacion"
	infrapdf "github.com/tu-usuario/tesoreria-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/tesoreria-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/tesoreria-api/internal/infrastructure/storage"
	httpRouter "github.com/tu-usuario/tesoreria-api/internal/interfaces/http"
	"github.com/tu-usuario/tesoreria-api/pkg/config"
	"github.com/tu-usuario/tesoreria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Configuración obligatoria ausente: fallar rápido y con nombre.
		var cErr *config.ConfigError
		if errors.As(err, &cErr) {
			panic("configuración: " + cErr.Error())
		}
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

	// Repositorios
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	socioRepo := postgres.NewSocioRepository(pool)
	cuentaRepo := postgres.NewCuentaRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	documentoRepo := postgres.NewDocumentoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Object storage (PDFs archivados + documentos de socios)
	archivoStore, err := storage.NewS3ArchivoStore(cfg.Storage, log.Modulo("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar object storage")
	}
	if err := archivoStore.EnsureBucket(ctx); err != nil {
		log.Fatal().Err(err).Msg("verificar bucket de storage")
	}

	// Autorización y sesiones: los permisos se derivan de DB en cada sign-in.
	resolver := authz.NewResolver(roleRepo)
	sesiones := session.NewManager(resolver, log.Modulo("session"))

	authUC := auth.NewAuthUseCase(userRepo, roleRepo, sesiones, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	rolesAdminUC := authz.NewAdminUseCase(roleRepo)

	// Padrón de socios y sus documentos
	socioUC := socios.NewUseCase(socioRepo)
	documentoUC := socios.NewDocumentoUseCase(socioRepo, documentoRepo, archivoStore)

	// Tesorería
	cuentaUC := tesoreria.NewCuentaUseCase(cuentaRepo)
	movimientoUC := tesoreria.NewMovimientoUseCase(txRunner, cuentaRepo, movimientoRepo)
	reporteUC := tesoreria.NewReporteUseCase(movimientoRepo, infrapdf.NewMarotoReporteGenerator())

	// Emisión de comprobantes vía el proveedor de facturación
	boletaAPI := infrafact.NewRESTClient(cfg.Facturacion.BaseURL, cfg.Facturacion.Token, log.Modulo("facturacion"))
	orquestador := appfact.NewOrquestador(boletaAPI, archivoStore, appfact.Config{
		Serie:     cfg.Facturacion.Serie,
		CompanyID: cfg.Facturacion.CompanyID,
		BranchID:  cfg.Facturacion.BranchID,
	}, log.Modulo("facturacion"))
	lookupUC := appfact.NewLookupUseCase(socioRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // documentos de socios por multipart
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tesorería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Sesiones:     sesiones,
		SocioUC:      socioUC,
		DocumentoUC:  documentoUC,
		CuentaUC:     cuentaUC,
		MovimientoUC: movimientoUC,
		ReporteUC:    reporteUC,
		Orquestador:  orquestador,
		LookupUC:     lookupUC,
		RolesAdminUC: rolesAdminUC,
		JWTSecret:    cfg.JWT.Secret,
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
