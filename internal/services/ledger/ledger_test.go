package ledger

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"billing-ledger-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	// one shared in-memory database per test, named after the test so
	// parallel tests never see each other's rows
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Client{}, &models.Invoice{}, &models.Payment{}))
	return NewService(db, zap.NewNop(), 5*time.Second)
}

func seedClient(t *testing.T, s *Service) *models.Client {
	t.Helper()
	client, err := s.CreateClient(context.Background(), ClientInput{
		FullName: "Ada Lovelace",
		Address:  "12 Analytical Row",
		Contact:  "ada@example.com",
	})
	require.NoError(t, err)
	return client
}

func seedInvoice(t *testing.T, s *Service, clientID uuid.UUID, amount string) models.Invoice {
	t.Helper()
	invoices, err := s.CreateInvoices(context.Background(), []InvoiceInput{{
		ClientID: clientID.String(),
		Item:     "consulting",
		Amount:   decimal.RequireFromString(amount),
		DueDate:  time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	return invoices[0]
}

func pay(t *testing.T, s *Service, invoiceID uuid.UUID, amount string) models.Payment {
	t.Helper()
	payments, err := s.CreatePayments(context.Background(), []PaymentInput{{
		InvoiceID: invoiceID.String(),
		Mode:      "cash",
		Amount:    decimal.RequireFromString(amount),
	}})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	return payments[0]
}

func countRows(t *testing.T, s *Service, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, s.db.Model(model).Count(&count).Error)
	return count
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
