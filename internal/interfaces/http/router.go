package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tesoreria-api/internal/application/auth"
	"github.com/tu-usuario/tesoreria-api/internal/application/authz"
	"github.com/tu-usuario/tesoreria-api/internal/application/facturacion"
	"github.com/tu-usuario/tesoreria-api/internal/application/session"
	"github.com/tu-usuario/tesoreria-api/internal/application/socios"
	"github.com/tu-usuario/tesoreria-api/internal/application/tesoreria"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Sesiones     *session.Manager
	SocioUC      *socios.UseCase
	DocumentoUC  *socios.DocumentoUseCase
	CuentaUC     *tesoreria.CuentaUseCase
	MovimientoUC *tesoreria.MovimientoUseCase
	ReporteUC    *tesoreria.ReporteUseCase
	Orquestador  *facturacion.Orquestador
	LookupUC     *facturacion.LookupUseCase
	RolesAdminUC *authz.AdminUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Cada grupo de recursos queda detrás del
// permiso de su ruta: sin grant resuelto no se entra (fail-closed).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login es público; el resto requiere Bearer Token)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Sesiones)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/refresh", authHandler.Refresh)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/session", authHandler.Session)

	permiso := func(ruta string) fiber.Handler {
		return RequirePermission(ruta, deps.Sesiones)
	}

	// Padrón de socios (/people)
	socioHandler := NewSocioHandler(deps.SocioUC)
	sociosGroup := protected.Group("/socios", permiso(entity.RutaSocios))
	sociosGroup.Post("/", socioHandler.Create)
	sociosGroup.Get("/", socioHandler.List)
	sociosGroup.Get("/:id", socioHandler.GetByID)
	sociosGroup.Put("/:id", socioHandler.Update)
	sociosGroup.Delete("/:id", socioHandler.Delete)

	// Documentos de socios (/partner-documents)
	documentoHandler := NewDocumentoHandler(deps.DocumentoUC)
	docsDeSocio := protected.Group("/socios/:id/documentos", permiso(entity.RutaDocumentosSocio))
	docsDeSocio.Post("/", documentoHandler.Subir)
	docsDeSocio.Get("/", documentoHandler.List)
	documentos := protected.Group("/documentos", permiso(entity.RutaDocumentosSocio))
	documentos.Get("/:docId/descargar", documentoHandler.Descargar)
	documentos.Delete("/:docId", documentoHandler.Eliminar)

	// Cuentas de banco/caja (/accounts)
	cuentaHandler := NewCuentaHandler(deps.CuentaUC)
	movimientoHandler := NewMovimientoHandler(deps.MovimientoUC)
	cuentas := protected.Group("/cuentas", permiso(entity.RutaCuentas))
	cuentas.Post("/", cuentaHandler.Create)
	cuentas.Get("/", cuentaHandler.List)
	cuentas.Get("/:id", cuentaHandler.GetByID)
	cuentas.Get("/:id/movimientos", movimientoHandler.ListByCuenta)

	// El registro de movimientos se gatea por tipo: /income y /expenses son
	// recursos separados con sus propios grants.
	ingresos := protected.Group("/ingresos", permiso(entity.RutaIngresos))
	ingresos.Post("/", movimientoHandler.RegistrarIngreso)
	egresos := protected.Group("/egresos", permiso(entity.RutaEgresos))
	egresos.Post("/", movimientoHandler.RegistrarEgreso)

	movimientos := protected.Group("/movimientos", permiso(entity.RutaCuentas))
	movimientos.Delete("/:id", movimientoHandler.Eliminar)

	reporteHandler := NewReporteHandler(deps.ReporteUC)
	reportes := protected.Group("/reportes", permiso(entity.RutaCuentas))
	reportes.Get("/caja", reporteHandler.Generar)
	reportes.Get("/caja/pdf", reporteHandler.GenerarPDF)

	// Emisión de comprobantes (/invoicing)
	comprobanteHandler := NewComprobanteHandler(deps.Orquestador, deps.LookupUC)
	comprobantes := protected.Group("/comprobantes", permiso(entity.RutaFacturacion))
	comprobantes.Get("/clientes/:numeroDoc", comprobanteHandler.BuscarCliente)
	comprobantes.Post("/", comprobanteHandler.Emitir)
	comprobantes.Get("/:id/estado", comprobanteHandler.Estado)
	comprobantes.Get("/:id/pdf", comprobanteHandler.DescargarPDF)
	comprobantes.Delete("/:id", comprobanteHandler.Descartar)

	// Configuración: roles, grants y usuarios (/settings)
	rolesHandler := NewRolesHandler(deps.RolesAdminUC)
	roles := protected.Group("/roles", permiso(entity.RutaConfiguracion))
	roles.Get("/", rolesHandler.ListRoles)
	roles.Get("/:id/grants", rolesHandler.ListGrants)
	roles.Put("/:id/grants", rolesHandler.SetGrant)
	roles.Post("/:id/members", rolesHandler.AssignRole)
	roles.Delete("/:id/members/:userId", rolesHandler.RemoveRole)

	usuarios := protected.Group("/users", permiso(entity.RutaConfiguracion))
	usuarios.Post("/", authHandler.CreateUser)
	usuarios.Get("/", authHandler.ListUsers)
}
