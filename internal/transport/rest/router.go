package rest

import (
	"crypto/rsa"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/hrops/backoffice/internal/advance"
	"github.com/hrops/backoffice/internal/assignment"
	"github.com/hrops/backoffice/internal/increment"
	"github.com/hrops/backoffice/internal/transport/middleware"
	"github.com/hrops/backoffice/internal/transport/swagger"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, publicKey *rsa.PublicKey, assignmentHandler *assignment.Handler, advanceHandler *advance.Handler, incrementHandler *increment.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Everything else requires an identified actor
		r.Group(func(pr chi.Router) {
			pr.Use(middleware.ActorContext(publicKey, logger))

			if assignmentHandler != nil {
				pr.Post("/assignments", assignmentHandler.CreateAssignment) // POST /assignments

				pr.Route("/employees/{employeeID}/assignments", func(ar chi.Router) {
					ar.Get("/", assignmentHandler.GetEmployeeAssignments) // GET /employees/:id/assignments
					ar.Get("/active", assignmentHandler.GetActiveAssignment)
					ar.Post("/reconcile", assignmentHandler.ReconcileAssignments)
				})
			}

			if advanceHandler != nil {
				pr.Route("/advances", func(ar chi.Router) {
					ar.Post("/", advanceHandler.RequestAdvance)  // POST /advances
					ar.Get("/", advanceHandler.ListAdvances)     // GET /advances
					ar.Get("/pending", advanceHandler.GetPendingAdvances)
					ar.Get("/deductions/upcoming", advanceHandler.GetUpcomingDeductions)
					ar.Get("/deductions/overdue", advanceHandler.GetOverdueDeductions)
					ar.Get("/{id}", advanceHandler.GetAdvance)
					ar.Patch("/{id}/approve", advanceHandler.ApproveAdvance)
					ar.Patch("/{id}/reject", advanceHandler.RejectAdvance)
					ar.Post("/{id}/deductions", advanceHandler.ProcessDeduction)
					ar.Post("/{id}/repayments", advanceHandler.RecordRepayment)
					ar.Get("/{id}/repayments", advanceHandler.GetRepayments)
					ar.Get("/{id}/schedule", advanceHandler.GetDeductionSchedule)
					ar.Patch("/{id}/deduction-plan", advanceHandler.UpdateDeductionPlan)
				})

				pr.Get("/employees/{employeeID}/advances", advanceHandler.GetEmployeeAdvances)
				pr.Get("/employees/{employeeID}/advances/balance", advanceHandler.GetEmployeeBalance)
			}

			if incrementHandler != nil {
				pr.Route("/increments", func(ir chi.Router) {
					ir.Post("/", incrementHandler.CreateIncrement)  // POST /increments
					ir.Get("/", incrementHandler.ListIncrements)    // GET /increments
					ir.Get("/statistics", incrementHandler.GetStatistics)
					ir.Get("/projected-cost", incrementHandler.GetProjectedAnnualCost)
					ir.Post("/apply-due", incrementHandler.ApplyDueIncrements)
					ir.Get("/{id}", incrementHandler.GetIncrement)
					ir.Patch("/{id}/approve", incrementHandler.ApproveIncrement)
					ir.Patch("/{id}/reject", incrementHandler.RejectIncrement)
					ir.Post("/{id}/apply", incrementHandler.ApplyIncrement)
				})

				pr.Get("/employees/{employeeID}/increments", incrementHandler.GetEmployeeIncrements)
				pr.Get("/employees/{employeeID}/salary-history", incrementHandler.GetSalaryHistory)
			}
		})
	})
}
