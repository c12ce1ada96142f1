// cmd/seed/main.go
package main

import (
	"context"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/auth"
	"github.com/ledgerkeep/core/internal/config"
	"github.com/ledgerkeep/core/internal/database"
	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
	"github.com/ledgerkeep/core/internal/service"
)

// Seeds one demo tenant with its auto-provisioned chart of accounts, an
// owner login, and one customer, vendor, product and tax rate so
// a fresh environment has something to explore immediately.
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DB.DSN, cfg.DB.MaxConns)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("failed to run migrations: ", err)
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWT.Secret)
	if err != nil {
		log.Fatal("failed to initialize token issuer: ", err)
	}

	repo := repository.New(db.Pool)
	authService := service.NewAuthService(db.Pool, repo, tokens)

	log.Println("registering demo tenant...")
	result, err := authService.Register(ctx, domain.RegisterParams{
		Email:            "owner@ledgerkeep.dev",
		Password:         "change-me-please",
		FirstName:        "Demo",
		LastName:         "Owner",
		OrganizationName: "Acme Bookkeeping",
	})
	if err != nil {
		if domain.ErrorCode(err) == domain.ECONFLICT {
			log.Println("demo tenant already exists, skipping seed")
			return
		}
		log.Fatal("failed to register demo tenant: ", err)
	}
	log.Printf("created tenant %q (%s) with owner %s", result.Tenant.Name, result.Tenant.ID, result.User.Email)

	tenantID := result.Tenant.ID
	customers := service.NewCustomerService(repo)
	vendors := service.NewVendorService(repo)
	products := service.NewProductService(repo)
	taxRates := service.NewTaxRateService(repo)
	accounts := service.NewAccountService(db.Pool, repo)

	customer, err := customers.Create(ctx, tenantID, service.PartyParams{
		Name: "Blue Bottle Roasters", Email: "ap@bluebottle.example", IsActive: true,
	})
	if err != nil {
		log.Fatal("failed to seed customer: ", err)
	}
	log.Printf("created customer %q (%s)", customer.Name, customer.ID)

	vendor, err := vendors.Create(ctx, tenantID, service.PartyParams{
		Name: "Green Mountain Supply Co", Email: "billing@greenmountain.example", IsActive: true,
	})
	if err != nil {
		log.Fatal("failed to seed vendor: ", err)
	}
	log.Printf("created vendor %q (%s)", vendor.Name, vendor.ID)

	salesAccount, err := accounts.GetBySubtype(ctx, tenantID, domain.SubtypeSales)
	if err != nil {
		log.Fatal("failed to look up the seeded sales account: ", err)
	}
	product, err := products.Create(ctx, tenantID, service.ProductParams{
		Name:             "Consulting Hour",
		Description:      "One hour of bookkeeping consultation",
		DefaultUnitPrice: decimal.RequireFromString("125.00"),
		IncomeAccountID:  &salesAccount.ID,
		IsActive:         true,
	})
	if err != nil {
		log.Fatal("failed to seed product: ", err)
	}
	log.Printf("created product %q (%s)", product.Name, product.ID)

	taxRate, err := taxRates.Create(ctx, tenantID, "Standard Sales Tax", decimal.RequireFromString("0.0725"))
	if err != nil {
		log.Fatal("failed to seed tax rate: ", err)
	}
	log.Printf("created tax rate %q at %s%%", taxRate.Name, taxRate.Rate.Mul(decimal.NewFromInt(100)).String())

	log.Println("seed complete")
	if os.Getenv("SEED_PRINT_TOKEN") == "true" {
		log.Printf("demo bearer token: %s", result.Token)
	}
}
