package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"poultry-books/internal/config"
	"poultry-books/internal/handlers"
	"poultry-books/internal/httpx"
	"poultry-books/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// --- Health endpoints ---
	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight DB check (SELECT 1) – detailed errors stay out of the body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{
			"status":      "ok",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Env,
		})
	})

	posting := services.NewPostingService(db)
	ledgerSvc := services.NewLedgerService(db)

	ch := handlers.NewCustomerHandler(db)
	vh := handlers.NewVendorHandler(db)
	dch := handlers.NewChallanHandler(db, posting)
	ih := handlers.NewInvoiceHandler(db, posting)
	lh := handlers.NewLedgerHandler(db, ledgerSvc)
	dash := handlers.NewDashboardHandler(db)

	mux.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", ch.List)
			r.Post("/", ch.Create)
			r.Get("/{id}", ch.Get)
			r.Put("/{id}", ch.Update)
			r.Delete("/{id}", ch.Delete)
		})
		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", vh.List)
			r.Post("/", vh.Create)
			r.Get("/{id}", vh.Get)
			r.Put("/{id}", vh.Update)
			r.Delete("/{id}", vh.Delete)
		})
		r.Route("/delivery-challans", func(r chi.Router) {
			r.Get("/", dch.List)
			r.Post("/", dch.Create)
			r.Get("/{id}", dch.Get)
		})
		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", ih.List)
			r.Post("/", ih.Create)
			r.Get("/{id}", ih.Get)
		})
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/", lh.List)
			r.Get("/export", lh.Export)
			r.Get("/{id}", lh.Get)
			r.Patch("/{id}", lh.Patch)
		})
		r.Get("/dashboard/summary", dash.Summary)
	})

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, "route_not_found", nil)
	})

	return withRecover(withLogging(mux))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
