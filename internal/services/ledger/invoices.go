package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"billing-ledger-backend/internal/models"
	"billing-ledger-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxInvoiceBatch bounds how many invoices one submission may carry.
const MaxInvoiceBatch = 5

type InvoiceInput struct {
	ClientID string
	Item     string
	Amount   decimal.Decimal
	DueDate  time.Time // zero means the caller omitted it
	Status   string
}

// InvoiceSummary is an invoice row joined with its client's name and the
// derived payment aggregates.
type InvoiceSummary struct {
	models.Invoice
	ClientName  string          `json:"client_name"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// InvoicePatch carries a partial update; nil fields are left unchanged.
type InvoicePatch struct {
	Amount *decimal.Decimal
	Item   *string
}

// CreateInvoices validates the whole batch, assigns invoice numbers, and
// inserts every row in one transaction. Either all invoices are persisted or
// none are.
func (s *Service) CreateInvoices(ctx context.Context, inputs []InvoiceInput) ([]models.Invoice, error) {
	if n := len(inputs); n == 0 || n > MaxInvoiceBatch {
		return nil, &BusinessRuleError{
			Rule:    RuleBatchSize,
			Message: fmt.Sprintf("batch must contain between 1 and %d invoices, got %d", MaxInvoiceBatch, n),
		}
	}

	// Whole-batch field validation before anything is written.
	clientIDs := make([]uuid.UUID, len(inputs))
	var problems []string
	for i, in := range inputs {
		var missing []string
		if strings.TrimSpace(in.ClientID) == "" {
			missing = append(missing, "client_id")
		} else {
			id, err := uuid.Parse(in.ClientID)
			if err != nil {
				problems = append(problems, fmt.Sprintf("entry %d: invalid client_id", i))
			} else {
				clientIDs[i] = id
			}
		}
		if strings.TrimSpace(in.Item) == "" {
			missing = append(missing, "item")
		}
		if !in.Amount.IsPositive() {
			missing = append(missing, "amount")
		}
		if in.DueDate.IsZero() {
			missing = append(missing, "due_date")
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("entry %d: missing or invalid %s", i, strings.Join(missing, ", ")))
		}
	}
	if len(problems) > 0 {
		return nil, invalidf("invoice batch rejected: %s", strings.Join(problems, "; "))
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	// Every referenced client must exist before the batch is accepted.
	seenClients := make(map[uuid.UUID]bool)
	for i, id := range clientIDs {
		if seenClients[id] {
			continue
		}
		if _, err := s.clients.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalidf("entry %d: client %s not found", i, id)
			}
			return nil, wrap("get client", err)
		}
		seenClients[id] = true
	}

	now := time.Now()
	rows := make([]models.Invoice, len(inputs))
	usedNumbers := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		number := s.newNumber()
		for usedNumbers[number] {
			number = s.newNumber()
		}
		usedNumbers[number] = true

		status := in.Status
		if strings.TrimSpace(status) == "" {
			status = "Pending"
		}
		rows[i] = models.Invoice{
			ID:            uuid.New(),
			ClientID:      clientIDs[i],
			InvoiceNumber: number,
			Item:          in.Item,
			Amount:        in.Amount,
			DueDate:       datatypes.Date(in.DueDate),
			Status:        status,
			CreatedAt:     now,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repository.NewInvoiceRepository(tx).CreateAll(ctx, rows)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Message: "invoice number already exists"}
		}
		return nil, wrap("create invoices", err)
	}

	s.log.Info("invoice batch committed", zap.Int("count", len(rows)))
	return rows, nil
}

// ListInvoices returns every invoice with its client name and payment totals.
func (s *Service) ListInvoices(ctx context.Context) ([]InvoiceSummary, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return buildInvoiceSummaries(snap, snap.invoices, false)
}

// UnpaidInvoices returns the client's invoices that still carry an
// outstanding balance.
func (s *Service) UnpaidInvoices(ctx context.Context, clientID uuid.UUID) ([]InvoiceSummary, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "client", ID: clientID.String()}
		}
		return nil, wrap("get client", err)
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var owned []models.Invoice
	for _, inv := range snap.invoices {
		if inv.ClientID == clientID {
			owned = append(owned, inv)
		}
	}
	return buildInvoiceSummaries(snap, owned, true)
}

func buildInvoiceSummaries(snap *ledgerSnapshot, invoices []models.Invoice, unpaidOnly bool) ([]InvoiceSummary, error) {
	summaries := make([]InvoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		payments := snap.paymentsByInvoice[inv.ID]
		remainder, err := Outstanding(inv, payments)
		if err != nil {
			return nil, err
		}
		if unpaidOnly && !remainder.IsPositive() {
			continue
		}
		summaries = append(summaries, InvoiceSummary{
			Invoice:     inv,
			ClientName:  snap.clientsByID[inv.ClientID].FullName,
			TotalPaid:   TotalPaid(payments),
			Outstanding: remainder,
		})
	}
	return summaries, nil
}

// UpdateInvoice applies a partial update to amount and/or item. The amount may
// not drop below what has already been paid; that would force the outstanding
// balance negative.
func (s *Service) UpdateInvoice(ctx context.Context, id uuid.UUID, patch InvoicePatch) (*models.Invoice, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var updated *models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoices := repository.NewInvoiceRepository(tx)
		payments := repository.NewPaymentRepository(tx)

		invoice, err := invoices.GetByIDForUpdate(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "invoice", ID: id.String()}
		}
		if err != nil {
			return err
		}

		if patch.Amount != nil {
			if !patch.Amount.IsPositive() {
				return invalidf("amount must be positive")
			}
			prior, err := payments.ListByInvoice(ctx, id)
			if err != nil {
				return err
			}
			if paid := TotalPaid(prior); patch.Amount.LessThan(paid) {
				return &BusinessRuleError{
					Rule:    RuleAmountBelowPaid,
					Message: fmt.Sprintf("amount %s is below the %s already paid", patch.Amount, paid),
				}
			}
			invoice.Amount = *patch.Amount
		}
		if patch.Item != nil {
			if strings.TrimSpace(*patch.Item) == "" {
				return invalidf("item must not be empty")
			}
			invoice.Item = *patch.Item
		}

		if err := invoices.Save(ctx, invoice); err != nil {
			return err
		}
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, wrap("update invoice", err)
	}
	return updated, nil
}

// DeleteInvoice removes an invoice that has no payments. An invoice with
// recorded payments is rejected rather than orphaning its payment rows.
func (s *Service) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if _, err := s.invoices.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "invoice", ID: id.String()}
		}
		return wrap("get invoice", err)
	}

	count, err := s.payments.CountByInvoice(ctx, id)
	if err != nil {
		return wrap("count invoice payments", err)
	}
	if count > 0 {
		return &ConflictError{Message: "invoice has recorded payments; delete them first"}
	}

	if err := s.invoices.Delete(ctx, id); err != nil {
		return wrap("delete invoice", err)
	}
	s.log.Info("invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}
