package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contest_hub/internal/api"
	apimiddleware "contest_hub/internal/api/middleware"
	"contest_hub/internal/app/service"
	"contest_hub/internal/common/security"
	"contest_hub/internal/domain/repository"
	"contest_hub/internal/platform/cache"
	"contest_hub/internal/platform/config"
	"contest_hub/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize token verification
	security.Init(config.AppConfig.TokenSecret)
	fmt.Println("Token verifier initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.Migrate(context.Background()); err != nil {
		log.Fatalf("Schema migration failed: %v", err)
	}
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	contestRepo := repository.NewPgContestRepository(database.DB)
	roleRepo := repository.NewPgRoleRepository(database.DB)
	paymentRepo := repository.NewPgPaymentRepository(database.DB)

	// 6. Initialize Services
	contestService := service.NewContestService(contestRepo)
	roleService := service.NewRoleService(roleRepo)
	paymentService := service.NewPaymentService(paymentRepo)
	checkoutService := service.NewCheckoutService(service.CheckoutConfig{
		ProviderURL:    config.AppConfig.PaymentProviderURL,
		ProviderSecret: config.AppConfig.PaymentProviderSecret,
		SiteDomain:     config.AppConfig.SiteDomain,
		SessionTTL:     config.AppConfig.CheckoutSessionTTL,
	}, cache.NewSessionStore(cache.RDB))

	// 7. Initialize Router & HTTP Server
	guard := apimiddleware.NewGuard(roleRepo)
	router := api.NewRouter(guard, contestService, roleService, paymentService, checkoutService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
