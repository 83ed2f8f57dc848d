package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-console/internal/application/catalog"
	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/movement"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/application/report"
	"github.com/jhoicas/farmacia-console/internal/application/session"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
	"github.com/jhoicas/farmacia-console/internal/infrastructure/backend"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions  *session.Manager
	Backend   *backend.Client
	Validator *validation.Validator
	Reports   report.Generator
	Metrics   *Metrics
	Cookie    CookieConfig
	SignIn    RateLimiterConfig
	Log       zerolog.Logger
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(deps.Metrics.Observe(deps.Log), recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "sessions": deps.Sessions.Count()})
	})
	app.Get("/metrics", deps.Metrics.Handler())

	movement.RegisterRules(deps.Validator)
	h := &Handler{
		backend: deps.Backend,
		v:       deps.Validator,
		reports: deps.Reports,
		metrics: deps.Metrics,
		log:     deps.Log,
	}

	app.Use(SessionMiddleware(deps.Sessions, deps.Cookie))

	// Público
	authHandler := &AuthHandler{Handler: h}
	limiter := NewRateLimiter(deps.SignIn)
	app.Get(SignInPath, authHandler.SignInPage)
	app.Post(SignInPath, limiter.Limit(func() { deps.Metrics.SignIn("rate_limited") }), authHandler.SignIn)
	app.Post("/sign-out", authHandler.SignOut)
	app.Get(UnauthorizedPath, authHandler.Unauthorized)

	// Rutas privadas (token + "quién soy")
	private := app.Group("/", PrivateRoute(), RequireRole())
	superAdmin := RequireRole(entity.RoleSuperAdmin)
	manage := RequireRole(entity.RoleSuperAdmin, entity.RoleManager)

	private.Get("/", authHandler.Panel)
	private.Get("/panel", authHandler.Panel)
	private.Post("/institution", authHandler.SelectInstitution)

	// Administración solo SUPER_ADMIN (página completa)
	RegisterCatalog(private.Group("/operators", superAdmin), "", h, CatalogRoutes[entity.Operator, dto.CreateOperatorRequest, dto.UpdateOperatorRequest]{
		Entity:  query.EntityOperators,
		Backend: func(a *backend.API) catalog.Backend[entity.Operator, dto.CreateOperatorRequest, dto.UpdateOperatorRequest] { return a.Operators },
		Filters: []string{"name", "email", "role"},
		Related: []query.Entity{query.EntityMe},
	})
	RegisterCatalog(private.Group("/institutions", superAdmin), "", h, CatalogRoutes[entity.Institution, dto.InstitutionRequest, dto.InstitutionRequest]{
		Entity:  query.EntityInstitutions,
		Backend: func(a *backend.API) catalog.Backend[entity.Institution, dto.InstitutionRequest, dto.InstitutionRequest] { return a.Institutions },
		Filters: []string{"name", "type"},
		Related: []query.Entity{query.EntityMe},
	})

	// Stocks de la institución seleccionada
	RegisterCatalog(private, "/stocks", h, CatalogRoutes[entity.Stock, dto.StockRequest, dto.StockRequest]{
		Entity:  query.EntityStocks,
		Backend: func(a *backend.API) catalog.Backend[entity.Stock, dto.StockRequest, dto.StockRequest] { return a.Stocks },
		Filters: []string{"name", "status"},
		Scoped:  true,
		Write:   manage,
	})

	// Catálogo de medicamentos; /medicines/variants antes que /medicines/:id
	RegisterCatalog(private, "/medicines/variants", h, CatalogRoutes[entity.MedicineVariant, dto.MedicineVariantRequest, dto.MedicineVariantRequest]{
		Entity:  query.EntityMedicineVariants,
		Backend: func(a *backend.API) catalog.Backend[entity.MedicineVariant, dto.MedicineVariantRequest, dto.MedicineVariantRequest] { return a.MedicineVariants },
		Filters: []string{"medicineId", "name"},
		Write:   manage,
		Related: []query.Entity{query.EntityMedicines, query.EntityInventory},
	})
	RegisterCatalog(private, "/medicines", h, CatalogRoutes[entity.Medicine, dto.MedicineRequest, dto.MedicineRequest]{
		Entity:  query.EntityMedicines,
		Backend: func(a *backend.API) catalog.Backend[entity.Medicine, dto.MedicineRequest, dto.MedicineRequest] { return a.Medicines },
		Filters: []string{"name", "therapeuticClassId", "pathologyId"},
		Write:   manage,
		Related: []query.Entity{query.EntityMedicineVariants},
	})
	RegisterCatalog(private, "/pathologies", h, CatalogRoutes[entity.Pathology, dto.PathologyRequest, dto.PathologyRequest]{
		Entity:  query.EntityPathologies,
		Backend: func(a *backend.API) catalog.Backend[entity.Pathology, dto.PathologyRequest, dto.PathologyRequest] { return a.Pathologies },
		Filters: []string{"name", "code"},
		Write:   manage,
	})
	RegisterCatalog(private, "/pharmaceutical-form", h, CatalogRoutes[entity.PharmaceuticalForm, dto.PharmaceuticalFormRequest, dto.PharmaceuticalFormRequest]{
		Entity:  query.EntityPharmaceuticalForms,
		Backend: func(a *backend.API) catalog.Backend[entity.PharmaceuticalForm, dto.PharmaceuticalFormRequest, dto.PharmaceuticalFormRequest] { return a.PharmaceuticalForms },
		Filters: []string{"name"},
		Write:   manage,
	})
	RegisterCatalog(private, "/unit-measure", h, CatalogRoutes[entity.UnitMeasure, dto.UnitMeasureRequest, dto.UnitMeasureRequest]{
		Entity:  query.EntityUnitMeasures,
		Backend: func(a *backend.API) catalog.Backend[entity.UnitMeasure, dto.UnitMeasureRequest, dto.UnitMeasureRequest] { return a.UnitMeasures },
		Filters: []string{"name", "acronym"},
		Write:   manage,
	})
	RegisterCatalog(private, "/therapeutic-class", h, CatalogRoutes[entity.TherapeuticClass, dto.TherapeuticClassRequest, dto.TherapeuticClassRequest]{
		Entity:  query.EntityTherapeuticClasses,
		Backend: func(a *backend.API) catalog.Backend[entity.TherapeuticClass, dto.TherapeuticClassRequest, dto.TherapeuticClassRequest] { return a.TherapeuticClasses },
		Filters: []string{"description"},
		Write:   manage,
	})
	RegisterCatalog(private, "/manufacturer", h, CatalogRoutes[entity.Manufacturer, dto.ManufacturerRequest, dto.ManufacturerRequest]{
		Entity:  query.EntityManufacturers,
		Backend: func(a *backend.API) catalog.Backend[entity.Manufacturer, dto.ManufacturerRequest, dto.ManufacturerRequest] { return a.Manufacturers },
		Filters: []string{"name", "cnpj"},
		Write:   manage,
	})
	RegisterCatalog(private, "/movement-types", h, CatalogRoutes[entity.MovementType, dto.MovementTypeRequest, dto.MovementTypeRequest]{
		Entity:  query.EntityMovementTypes,
		Backend: func(a *backend.API) catalog.Backend[entity.MovementType, dto.MovementTypeRequest, dto.MovementTypeRequest] { return a.MovementTypes },
		Filters: []string{"name", "direction"},
		Write:   manage,
	})

	// Pacientes; /users/new antes que /users/:id
	private.Get("/users/new", NewForm[dto.UserRequest]("users-new"))
	users := RegisterCatalog(private, "/users", h, CatalogRoutes[entity.User, dto.UserRequest, dto.UserRequest]{
		Entity:  query.EntityUsers,
		Backend: func(a *backend.API) catalog.Backend[entity.User, dto.UserRequest, dto.UserRequest] { return a.Users },
		Filters: []string{"name", "cpf", "sus"},
	})
	private.Post("/users/new", users.Create)
	private.Get("/users/edit/:id", users.Get)
	private.Put("/users/edit/:id", users.Update)

	// Movimientos
	mv := &MovementHandler{Handler: h}
	private.Get("/movement/entries", mv.ListEntries)
	private.Post("/movement/entries", mv.RegisterEntry)
	private.Get("/movement/exits", mv.ListExits)
	private.Post("/movement/exits", mv.RegisterExit)
	private.Get("/movement/exits/batches", mv.SearchBatches)
	private.Get("/movement/transfers", mv.ListTransfers)

	// Dispensación
	private.Get("/dispensation", mv.ListDispensations)
	private.Get("/dispensation/new", mv.DispensationDraft)
	private.Post("/dispensation/new", mv.SubmitDispensation)
	private.Post("/dispensation/new/medicines", mv.AddDispensationMedicine)
	private.Delete("/dispensation/new/medicines/:medicineStockId", mv.RemoveDispensationMedicine)

	// Inventario, tablero y reportes
	inv := &InventoryHandler{Handler: h}
	private.Get("/inventory", inv.ListInventory)
	private.Get("/inventory/:id", inv.Details)
	private.Get("/dashboard", inv.Dashboard)
	private.Get("/reports", inv.ReportKinds)
	private.Get("/reports/:kind/export", inv.ExportReport)
}
