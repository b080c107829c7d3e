package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganaderia-api/internal/application/allocation"
	"github.com/jhoicas/Ganaderia-api/internal/application/catalog"
	"github.com/jhoicas/Ganaderia-api/internal/application/cattle"
	"github.com/jhoicas/Ganaderia-api/internal/application/ledger"
	"github.com/jhoicas/Ganaderia-api/internal/application/movement"
	"github.com/jhoicas/Ganaderia-api/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC    *catalog.CatalogUseCase
	RegistryUC   *cattle.RegistryUseCase
	LedgerUC     *ledger.LedgerUseCase
	MovementUC   *movement.MovementUseCase
	AllocationUC *allocation.AllocationUseCase
	ReportUC     *report.ReportUseCase
}

// Router registra las rutas de la API. Toda ruta requiere el header
// X-Company-ID (particionado por empresa).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", CompanyMiddleware())

	// Catálogos
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Post("/categories", catalogHandler.CreateCategory)
	api.Get("/categories", catalogHandler.ListCategories)
	api.Post("/breeds", catalogHandler.CreateBreed)
	api.Get("/breeds", catalogHandler.ListBreeds)
	api.Post("/locations", catalogHandler.CreateLocation)
	api.Get("/locations", catalogHandler.ListLocations)

	// Registro de ganado
	cattleGroup := api.Group("/cattle")
	cattleHandler := NewCattleHandler(deps.RegistryUC)
	cattleGroup.Post("/", cattleHandler.Register)
	cattleGroup.Get("/", cattleHandler.List)
	cattleGroup.Get("/:id", cattleHandler.GetProfile)
	cattleGroup.Patch("/:id/state", cattleHandler.SetState)

	// Series por animal
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	cattleGroup.Post("/:id/weights", ledgerHandler.RecordWeight)
	cattleGroup.Get("/:id/weights", ledgerHandler.ListWeights)
	cattleGroup.Post("/:id/health-events", ledgerHandler.RecordHealthEvent)
	cattleGroup.Get("/:id/health-events", ledgerHandler.ListHealthEvents)
	cattleGroup.Get("/:id/costs", ledgerHandler.ListCosts)

	// Ficha imprimible
	reportHandler := NewReportHandler(deps.ReportUC)
	cattleGroup.Get("/:id/report", reportHandler.CattleReport)

	// Movimientos masivos
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/:id/apply", movementHandler.Apply)
	movements.Get("/:id/history", movementHandler.ListHistory)
	cattleGroup.Get("/:id/movements", movementHandler.ListHistoryByCattle)

	// Asignación de costes
	allocations := api.Group("/allocations")
	allocationHandler := NewAllocationHandler(deps.AllocationUC)
	allocations.Post("/", allocationHandler.Create)
	allocations.Get("/", allocationHandler.List)
	allocations.Get("/:id", allocationHandler.GetByID)
	allocations.Get("/:id/lines", allocationHandler.ListLines)
	allocations.Put("/:id/lines", allocationHandler.SelectLines)
	allocations.Post("/:id/lines/refresh", allocationHandler.RefreshLines)
	allocations.Post("/:id/allocate", allocationHandler.Allocate)
}
