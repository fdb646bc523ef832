package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"profast/internal/config"
	"profast/internal/database"
	"profast/internal/handler"
	"profast/internal/mw"
	"profast/internal/service"
	"profast/internal/worker"
)

func main() {
	cfg := config.New()

	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(context.Background(), db)

	if err := database.InitSchema(db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	// Services
	userSvc := service.NewUserService(db)
	parcelSvc := service.NewParcelService(db)
	paymentSvc := service.NewPaymentService(db)
	gateway := service.NewStripeClient(cfg.PaymentGatewayAddress, cfg.PaymentGatewayKey)

	// Worker
	reconcileWorker := worker.NewReconcileWorker(paymentSvc)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ProFast Server is Running"))
	})
	r.Post("/users", handler.UpsertUserHandler(userSvc))
	r.Get("/parcels/{id}", handler.GetParcelHandler(parcelSvc))
	r.Post("/create-payment-intent", handler.CreatePaymentIntentHandler(gateway))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.JWTSecret))

		r.Get("/parcels", handler.ListParcelsHandler(parcelSvc))
		r.Post("/parcels", handler.CreateParcelHandler(parcelSvc))
		r.Delete("/parcels/{id}", handler.DeleteParcelHandler(parcelSvc))

		r.Get("/payments", handler.ListPaymentsHandler(paymentSvc))
		r.Post("/payments", handler.RecordPaymentHandler(paymentSvc))
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go reconcileWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
