// Package router wires every internal/handler/api handler onto echo
// routes, mounting the global middleware stack in the order a request
// actually passes through it: request id, structured logging, security
// headers, then bearer auth on the /api/v1 group (/health and the two
// /auth endpoints are unauthenticated).
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ledgerkeep/core/internal/auth"
	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/handler/api"
	"github.com/ledgerkeep/core/internal/middleware"
	"github.com/ledgerkeep/core/internal/reporting"
	"github.com/ledgerkeep/core/internal/service"
	"github.com/ledgerkeep/core/internal/tenant"
)

// Services bundles every service the router needs a handler for.
type Services struct {
	Auth           domain.AuthService
	Accounts       service.AccountService
	Customers      service.CustomerService
	Vendors        service.VendorService
	Products       service.ProductService
	TaxRates       service.TaxRateService
	Invoices       service.InvoiceService
	Bills          service.BillService
	Payments       service.PaymentService
	VendorPayments service.VendorPaymentService
	Expenses       service.ExpenseService
	JournalEntries service.JournalEntryService
	Reports        *reporting.Service
}

// New builds an *echo.Echo with every route and middleware layer wired.
func New(svc Services, tokens *auth.TokenIssuer, tenants tenant.Lookup, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = middleware.HTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.ZerologMiddleware(logger))
	e.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig()))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "healthy", "service": "ledgerkeep"})
	})

	authHandler := api.NewAuthHandler(svc.Auth)
	authGroup := e.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login, middleware.StrictRateLimit())

	v1 := e.Group("/api/v1", middleware.BearerAuth(tokens, tenants))

	accounts := api.NewAccountHandler(svc.Accounts)
	v1.POST("/accounts", accounts.Create)
	v1.GET("/accounts", accounts.List)
	v1.GET("/accounts/:id", accounts.Get)
	v1.PUT("/accounts/:id", accounts.Update)
	v1.POST("/accounts/:id/deactivate", accounts.Deactivate)
	v1.DELETE("/accounts/:id", accounts.Delete)

	customers := api.NewCustomerHandler(svc.Customers)
	v1.POST("/customers", customers.Create)
	v1.GET("/customers", customers.List)
	v1.GET("/customers/:id", customers.Get)
	v1.PUT("/customers/:id", customers.Update)
	v1.DELETE("/customers/:id", customers.Delete)

	vendors := api.NewVendorHandler(svc.Vendors)
	v1.POST("/vendors", vendors.Create)
	v1.GET("/vendors", vendors.List)
	v1.GET("/vendors/:id", vendors.Get)
	v1.PUT("/vendors/:id", vendors.Update)
	v1.DELETE("/vendors/:id", vendors.Delete)

	products := api.NewProductHandler(svc.Products)
	v1.POST("/products", products.Create)
	v1.GET("/products", products.List)
	v1.GET("/products/:id", products.Get)
	v1.PUT("/products/:id", products.Update)
	v1.DELETE("/products/:id", products.Delete)

	taxRates := api.NewTaxRateHandler(svc.TaxRates)
	v1.POST("/tax-rates", taxRates.Create)
	v1.GET("/tax-rates", taxRates.List)
	v1.GET("/tax-rates/:id", taxRates.Get)

	invoices := api.NewInvoiceHandler(svc.Invoices)
	v1.POST("/invoices", invoices.Create)
	v1.GET("/invoices", invoices.List)
	v1.GET("/invoices/:id", invoices.Get)
	v1.PUT("/invoices/:id", invoices.Update)
	v1.POST("/invoices/:id/send", invoices.Send)
	v1.POST("/invoices/:id/void", invoices.Void)
	v1.DELETE("/invoices/:id", invoices.Delete)

	bills := api.NewBillHandler(svc.Bills)
	v1.POST("/bills", bills.Create)
	v1.GET("/bills", bills.List)
	v1.GET("/bills/:id", bills.Get)
	v1.PUT("/bills/:id", bills.Update)
	v1.POST("/bills/:id/approve", bills.Approve)
	v1.POST("/bills/:id/pay", bills.Pay)
	v1.POST("/bills/:id/void", bills.Void)
	v1.DELETE("/bills/:id", bills.Delete)

	payments := api.NewPaymentHandler(svc.Payments)
	v1.POST("/payments", payments.Create)
	v1.GET("/payments", payments.List)
	v1.GET("/payments/:id", payments.Get)
	v1.POST("/payments/:id/void", payments.Void)

	vendorPayments := api.NewVendorPaymentHandler(svc.VendorPayments)
	v1.POST("/vendor-payments", vendorPayments.Create)
	v1.GET("/vendor-payments", vendorPayments.List)
	v1.GET("/vendor-payments/:id", vendorPayments.Get)
	v1.POST("/vendor-payments/:id/void", vendorPayments.Void)

	expenses := api.NewExpenseHandler(svc.Expenses)
	v1.POST("/expenses", expenses.Create)
	v1.GET("/expenses", expenses.List)
	v1.GET("/expenses/:id", expenses.Get)
	v1.POST("/expenses/:id/void", expenses.Void)

	journalEntries := api.NewJournalEntryHandler(svc.JournalEntries)
	v1.POST("/journal-entries", journalEntries.Create)
	v1.GET("/journal-entries", journalEntries.List)
	v1.GET("/journal-entries/:id", journalEntries.Get)
	v1.POST("/journal-entries/:id/void", journalEntries.Void)

	reports := api.NewReportHandler(svc.Reports)
	v1.GET("/reports/accounts/:id/balance", reports.AccountBalance)
	v1.GET("/reports/accounts/balances", reports.ListAccountBalances)
	v1.GET("/reports/trial-balance", reports.TrialBalance)
	v1.GET("/reports/profit-and-loss", reports.ProfitAndLoss)
	v1.GET("/reports/balance-sheet", reports.BalanceSheet)
	v1.GET("/reports/ar-aging", reports.ARAging)
	v1.GET("/reports/ap-aging", reports.APAging)
	v1.GET("/reports/transaction-journal", reports.TransactionJournal)

	return e
}
