package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	calculatePriceHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/calculate_price"
	cancelRequestHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/cancel_request"
	checkRestrictionHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/check_restriction"
	confirmPaymentHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/confirm_payment"
	createPaymentIntentHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/create_payment_intent"
	createRequestHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/create_request"
	getAvailabilityHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/get_availability"
	getRequestHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/get_request"
	getUserRequestsHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/get_user_requests"
	paymentWebhookHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/payment_webhook"
	refundPaymentHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/refund_payment"
	searchProvidersHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/search_providers"
	updateRequestHandler "github.com/ruedapp/RuedApp-CoreService/internal/api/handlers/update_request"
	"github.com/ruedapp/RuedApp-CoreService/internal/api/middleware"
	"github.com/ruedapp/RuedApp-CoreService/internal/config"
	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	outboxRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/outbox"
	paymentRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/payment"
	providerRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/provider"
	requestRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/servicerequest"
	vehicleRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/vehicle"
	"github.com/ruedapp/RuedApp-CoreService/internal/integrations/paymentgateway"
	"github.com/ruedapp/RuedApp-CoreService/internal/integrations/pushgateway"
	paymentsService "github.com/ruedapp/RuedApp-CoreService/internal/service/payments"
	requestsService "github.com/ruedapp/RuedApp-CoreService/internal/service/requests"
	calculatePriceUC "github.com/ruedapp/RuedApp-CoreService/internal/usecase/calculate_price"
	checkRestrictionUC "github.com/ruedapp/RuedApp-CoreService/internal/usecase/check_restriction"
	createRequestUC "github.com/ruedapp/RuedApp-CoreService/internal/usecase/create_request"
	getAvailabilityUC "github.com/ruedapp/RuedApp-CoreService/internal/usecase/get_availability"
	searchProvidersUC "github.com/ruedapp/RuedApp-CoreService/internal/usecase/search_providers"
	"github.com/ruedapp/RuedApp-CoreService/internal/worker/outboxdispatcher"
	"github.com/ruedapp/RuedApp-CoreService/pkg/dbmetrics"
	"github.com/ruedapp/RuedApp-CoreService/pkg/logger"
	"github.com/ruedapp/RuedApp-CoreService/pkg/metrics"
	"github.com/ruedapp/RuedApp-CoreService/pkg/simpletxmanager"
	"github.com/ruedapp/RuedApp-CoreService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting RuedApp-CoreService...")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	gatewayClient := paymentgateway.NewClient(
		cfg.PaymentGateway.URL,
		cfg.PaymentGateway.APIKey,
		cfg.PaymentGateway.WebhookSecret,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	pushClient := pushgateway.NewClient(
		cfg.PushGateway.URL,
		cfg.PushGateway.APIKey,
		time.Duration(cfg.PushGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PaymentGateway=%s, PushGateway=%s)",
		cfg.PaymentGateway.URL, cfg.PushGateway.URL)

	var (
		vehicleRepository  *vehicleRepo.Repository
		providerRepository *providerRepo.Repository
		requestRepository  *requestRepo.Repository
		paymentRepository  *paymentRepo.Repository
		outboxRepository   *outboxRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		providerRepository = providerRepo.NewRepository(wrappedDB)
		requestRepository = requestRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		vehicleRepository = vehicleRepo.NewRepository(db)
		providerRepository = providerRepo.NewRepository(db)
		requestRepository = requestRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	requestsSvc := requestsService.NewService(requestRepository, outboxRepository, txMgr, log)
	paymentsSvc := paymentsService.NewService(
		paymentRepository,
		requestRepository,
		gatewayClient,
		outboxRepository,
		txMgr,
		log,
	)

	checkRestrictionUseCase := checkRestrictionUC.NewUseCase(domain.DefaultRestrictionCalendar(), log)
	searchProvidersUseCase := searchProvidersUC.NewUseCase(providerRepository, log)
	calculatePriceUseCase := calculatePriceUC.NewUseCase(providerRepository, vehicleRepository, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(providerRepository, requestRepository, log)
	createRequestUseCase := createRequestUC.NewUseCase(
		vehicleRepository,
		providerRepository,
		requestRepository,
		outboxRepository,
		txMgr,
		log,
	)

	checkRestriction := checkRestrictionHandler.NewHandler(checkRestrictionUseCase, log)
	searchProviders := searchProvidersHandler.NewHandler(searchProvidersUseCase, log)
	calculatePrice := calculatePriceHandler.NewHandler(calculatePriceUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createRequest := createRequestHandler.NewHandler(createRequestUseCase, log)
	getRequest := getRequestHandler.NewHandler(requestsSvc, log)
	updateRequest := updateRequestHandler.NewHandler(requestsSvc, log)
	cancelRequest := cancelRequestHandler.NewHandler(requestsSvc, log)
	getUserRequests := getUserRequestsHandler.NewHandler(requestsSvc, log)
	createPaymentIntent := createPaymentIntentHandler.NewHandler(paymentsSvc, log)
	confirmPayment := confirmPaymentHandler.NewHandler(paymentsSvc, log)
	refundPayment := refundPaymentHandler.NewHandler(paymentsSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(paymentsSvc, log)

	dispatcher := outboxdispatcher.New(
		outboxRepository,
		pushClient,
		txMgr,
		log,
		time.Duration(cfg.Outbox.PollInterval)*time.Second,
		cfg.Outbox.BatchSize,
		cfg.Outbox.MaxAttempts,
	)
	dispatcher.Start()
	log.Info("Outbox dispatcher started")

	r := mux.NewRouter()
	r.Use(middleware.CORS)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/restrictions/check", checkRestriction.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/search", searchProviders.Handle).Methods(http.MethodPost)
	api.HandleFunc("/providers/{providerId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/requests/price", calculatePrice.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// Protected routes (X-User-ID header).
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/requests", createRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/requests/{requestId}", getRequest.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/requests/{requestId}", updateRequest.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/requests/{requestId}/cancel", cancelRequest.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/requests", getUserRequests.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/payments/intents", createPaymentIntent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/intents/{intentId}/confirm", confirmPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/intents/{intentId}/refund", refundPayment.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	dispatcher.Stop()
	log.Info("Outbox dispatcher stopped")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
