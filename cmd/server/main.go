package main

import (
	"context"
	"net/http"
	"os"

	webAdapter "github.com/AhmedGad3/construction-erp/internal/adapters/web"
	"github.com/AhmedGad3/construction-erp/internal/app"
	"github.com/AhmedGad3/construction-erp/internal/core"
	"github.com/AhmedGad3/construction-erp/internal/db"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	userService := core.NewUserService(pool)
	supplierService := core.NewSupplierService(pool)
	invoiceService := core.NewInvoiceService(pool, supplierService)
	paymentService := core.NewPaymentService(pool, supplierService)
	inventoryService := core.NewInventoryService(pool)
	reportingService := core.NewReportingService(supplierService, invoiceService, paymentService)

	svc := app.NewAppService(userService, supplierService, invoiceService, paymentService, inventoryService, reportingService)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET environment variable not set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
