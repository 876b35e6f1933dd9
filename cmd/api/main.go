package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/msme-dost/marketplace/internal/config"
	"github.com/msme-dost/marketplace/internal/handler"
	"github.com/msme-dost/marketplace/internal/insight"
	"github.com/msme-dost/marketplace/internal/integrations/rbi"
	"github.com/msme-dost/marketplace/internal/middleware"
	"github.com/msme-dost/marketplace/internal/repository"
	"github.com/msme-dost/marketplace/internal/service"
	"github.com/msme-dost/marketplace/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize collection store
	store, err := repository.NewStore(cfg.DataDir)
	if err != nil {
		logger.Fatalf("Failed to open data dir: %v", err)
	}

	// Initialize layers
	scorer := insight.NewFitScorer(time.Now().UnixNano())
	svc := service.NewService(store, logger, cfg, scorer)
	rateClient := rbi.NewClient(cfg, logger)
	svc.WithRates(rateClient)
	if cfg.SMTPHost != "" {
		svc.WithNotifier(email.NewSender(cfg, logger))
	}
	h := handler.NewHandler(svc)

	// Repair collections on startup and on a schedule
	svc.RepairCollections(false)
	c := cron.New()
	if _, err := c.AddFunc("@every 10m", func() { svc.RepairCollections(false) }); err != nil {
		logger.Fatalf("Failed to schedule repair job: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Benchmark rate endpoint
	r.HandleFunc("/benchmark-rate", func(w http.ResponseWriter, r *http.Request) {
		rate, err := rateClient.GetBenchmarkRate()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get benchmark rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"benchmark_rate": rate})
	}).Methods("GET")

	// MSME routes
	msmeRouter := r.PathPrefix("/").Subrouter()
	msmeRouter.Use(middleware.Auth(cfg), middleware.RequireRole("msme"), middleware.SelfHeal(svc, logger))
	msmeRouter.HandleFunc("/dashboard/msme", h.MsmeDashboard).Methods("GET")
	msmeRouter.HandleFunc("/offers/insights", h.OfferInsights).Methods("GET")
	msmeRouter.HandleFunc("/bids", h.SubmitBid).Methods("POST")

	// Lender routes
	lenderRouter := r.PathPrefix("/").Subrouter()
	lenderRouter.Use(middleware.Auth(cfg), middleware.RequireRole("lender"), middleware.SelfHeal(svc, logger))
	lenderRouter.HandleFunc("/dashboard/lender", h.LenderDashboard).Methods("GET")
	lenderRouter.HandleFunc("/offers", h.SubmitOffer).Methods("POST")
	lenderRouter.HandleFunc("/msme-profile/{msmeId}", h.MsmeProfile).Methods("GET")

	// Buyer routes
	buyerRouter := r.PathPrefix("/").Subrouter()
	buyerRouter.Use(middleware.Auth(cfg), middleware.RequireRole("buyer"), middleware.SelfHeal(svc, logger))
	buyerRouter.HandleFunc("/dashboard/buyer", h.BuyerDashboard).Methods("GET")
	buyerRouter.HandleFunc("/rfps", h.SubmitRfp).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
