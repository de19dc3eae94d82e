package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	handler "billing-ledger-backend/internal/handlers"
	"billing-ledger-backend/internal/services/ledger"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, log *zap.Logger, dbTimeout time.Duration) {
	ledgerService := ledger.NewService(db, log, dbTimeout)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	clients := r.Group("/clients")
	{
		clients.GET("", ledgerHandler.ListClients)
		clients.POST("", ledgerHandler.CreateClient)
		clients.GET("/:id", ledgerHandler.GetClient)
		clients.DELETE("/:id", ledgerHandler.DeleteClient)
	}

	invoices := r.Group("/invoices")
	{
		invoices.GET("", ledgerHandler.ListInvoices)
		invoices.POST("", ledgerHandler.CreateInvoices)
		invoices.PUT("/:id", ledgerHandler.UpdateInvoice)
		invoices.DELETE("/:id", ledgerHandler.DeleteInvoice)
	}

	payments := r.Group("/payments")
	{
		payments.GET("", ledgerHandler.ListPayments)
		payments.POST("", ledgerHandler.CreatePayments)
		payments.DELETE("/:id", ledgerHandler.DeletePayment)
	}

	reports := r.Group("/reports")
	{
		reports.GET("/outstanding", ledgerHandler.OutstandingReport)
		reports.GET("/overall", ledgerHandler.OverallReport)
		reports.GET("/payments", ledgerHandler.PaymentReport)
	}
}
