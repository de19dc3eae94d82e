package ledger

import (
	"context"
	"errors"
	"time"

	"billing-ledger-backend/internal/models"
	"billing-ledger-backend/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service owns the billing ledger: clients, invoices, payments, and every
// balance derivation. All writes go through the store's transactional
// guarantees; the service keeps no mutable state of its own.
type Service struct {
	db       *gorm.DB
	clients  *repository.ClientRepository
	invoices *repository.InvoiceRepository
	payments *repository.PaymentRepository
	log      *zap.Logger
	timeout  time.Duration

	// overridable in tests to force invoice number collisions
	newNumber func() string
}

func NewService(db *gorm.DB, log *zap.Logger, timeout time.Duration) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		db:        db,
		clients:   repository.NewClientRepository(db),
		invoices:  repository.NewInvoiceRepository(db),
		payments:  repository.NewPaymentRepository(db),
		log:       log,
		timeout:   timeout,
		newNumber: NewInvoiceNumber,
	}
}

// opCtx bounds every store round trip so a stuck connection surfaces as a
// PersistenceError instead of hanging the request.
func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// wrap folds store failures into the error taxonomy. Errors that already
// carry a category pass through untouched.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if classified(err) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Message: op + ": unique constraint violated"}
	}
	return &PersistenceError{Op: op, Err: err}
}

// ledgerSnapshot is a consistent in-memory view used by list and report reads.
// Balances are always derived from the payment rows it holds, never read from
// a stored column.
type ledgerSnapshot struct {
	clients           []models.Client
	clientsByID       map[uuid.UUID]models.Client
	invoices          []models.Invoice
	invoicesByID      map[uuid.UUID]models.Invoice
	payments          []models.Payment // newest first
	paymentsByInvoice map[uuid.UUID][]models.Payment
}

func (s *Service) snapshot(ctx context.Context) (*ledgerSnapshot, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, wrap("list clients", err)
	}
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, wrap("list invoices", err)
	}
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, wrap("list payments", err)
	}

	snap := &ledgerSnapshot{
		clients:           clients,
		clientsByID:       make(map[uuid.UUID]models.Client, len(clients)),
		invoices:          invoices,
		invoicesByID:      make(map[uuid.UUID]models.Invoice, len(invoices)),
		payments:          payments,
		paymentsByInvoice: make(map[uuid.UUID][]models.Payment),
	}
	for _, c := range clients {
		snap.clientsByID[c.ID] = c
	}
	for _, inv := range invoices {
		snap.invoicesByID[inv.ID] = inv
	}
	for _, p := range payments {
		snap.paymentsByInvoice[p.InvoiceID] = append(snap.paymentsByInvoice[p.InvoiceID], p)
	}
	return snap, nil
}
