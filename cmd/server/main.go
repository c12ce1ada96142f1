// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledgerkeep/core/internal/auth"
	"github.com/ledgerkeep/core/internal/config"
	"github.com/ledgerkeep/core/internal/database"
	"github.com/ledgerkeep/core/internal/middleware"
	"github.com/ledgerkeep/core/internal/numbering"
	"github.com/ledgerkeep/core/internal/reporting"
	"github.com/ledgerkeep/core/internal/repository"
	"github.com/ledgerkeep/core/internal/router"
	"github.com/ledgerkeep/core/internal/service"
	"github.com/ledgerkeep/core/internal/tenant"
)

func main() {
	debug := flag.Bool("debug", false, "sets log level to debug")
	flag.Parse()

	logLevel := "info"
	if *debug {
		logLevel = "debug"
	}
	logger := middleware.SetupLogger(logLevel, "console")

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Open(ctx, cfg.DB.DSN, cfg.DB.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	logger.Info().Msg("database connection established")

	if err := db.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWT.Secret)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize token issuer")
	}

	repo := repository.New(db.Pool)
	numbers := numbering.New(repo)
	tenants := tenant.NewDBLookup(repo)

	accounts := service.NewAccountService(db.Pool, repo)
	vendorPayments := service.NewVendorPaymentService(db.Pool, repo, numbers, accounts)
	svc := router.Services{
		Auth:           service.NewAuthService(db.Pool, repo, tokens),
		Accounts:       accounts,
		Customers:      service.NewCustomerService(repo),
		Vendors:        service.NewVendorService(repo),
		Products:       service.NewProductService(repo),
		TaxRates:       service.NewTaxRateService(repo),
		Invoices:       service.NewInvoiceService(db.Pool, repo, numbers, accounts),
		Bills:          service.NewBillService(db.Pool, repo, numbers, accounts, vendorPayments),
		Payments:       service.NewPaymentService(db.Pool, repo, numbers, accounts),
		VendorPayments: vendorPayments,
		Expenses:       service.NewExpenseService(db.Pool, repo, numbers),
		JournalEntries: service.NewJournalEntryService(db.Pool, repo, numbers),
		Reports:        reporting.New(repo),
	}

	e := router.New(svc, tokens, tenants, logger)

	go func() {
		logger.Info().Int("port", cfg.App.Port).Msg("starting server")
		if err := e.Start(fmt.Sprintf(":%d", cfg.App.Port)); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
