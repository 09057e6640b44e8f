package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"moneykeeper/internal/service"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version/", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/expenses", func(r chi.Router) {
			h.recordRoutes(r, h.services.ExpenseService, "expenses", true)
		})
		r.Route("/api/income", func(r chi.Router) {
			h.recordRoutes(r, h.services.IncomeService, "income", false)
		})

		r.Route("/api/dashboard", func(r chi.Router) {
			r.Get("/stats", h.dashboardStats)
			r.Get("/expense-trend", h.expenseTrend)
			r.Get("/income-vs-expense", h.incomeVsExpense)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// recordRoutes registers the shared CRUD and aggregation routes for one
// record service. The static paths must come before the "/{id}" parameter
// routes so that "stats" is never parsed as a record id.
func (h *Handler) recordRoutes(r chi.Router, svc service.RecordService, collection string, withPayment bool) {
	r.Get("/stats", h.recordStats(svc))
	r.Get("/by-category", h.recordsByCategory(svc))
	r.Get("/monthly", h.recordsMonthly(svc))
	r.Get("/export/csv", h.exportRecordsCSV(svc, collection, withPayment))

	r.Post("/", h.createRecord(svc))
	r.Get("/", h.listRecords(svc))
	r.Get("/{id}", h.getRecord(svc))
	r.Put("/{id}", h.updateRecord(svc))
	r.Delete("/{id}", h.deleteRecord(svc))
}
