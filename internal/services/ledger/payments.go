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

type PaymentInput struct {
	InvoiceID   string
	Mode        string
	Amount      decimal.Decimal
	PaymentDate time.Time // zero defaults to the submission date
}

// PaymentSummary is a payment row joined with its invoice number, the owning
// client's name, and the invoice's current outstanding balance.
type PaymentSummary struct {
	models.Payment
	ClientName    string          `json:"client_name"`
	InvoiceNumber string          `json:"invoice_number"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// CreatePayments validates every entry against live outstanding balances and
// inserts the batch in one transaction. The target invoice rows stay locked
// from the balance check through the insert, so a concurrent submission
// against the same invoice cannot slip a payment in between. Within the
// batch, a running remainder per invoice makes later entries see what earlier
// entries already consumed; two entries cannot jointly overdraw an invoice.
func (s *Service) CreatePayments(ctx context.Context, inputs []PaymentInput) ([]models.Payment, error) {
	if len(inputs) == 0 {
		return nil, invalidf("payment batch is empty")
	}

	invoiceIDs := make([]uuid.UUID, len(inputs))
	var problems []string
	for i, in := range inputs {
		var missing []string
		if strings.TrimSpace(in.InvoiceID) == "" {
			missing = append(missing, "invoice_id")
		} else {
			id, err := uuid.Parse(in.InvoiceID)
			if err != nil {
				problems = append(problems, fmt.Sprintf("entry %d: invalid invoice_id", i))
			} else {
				invoiceIDs[i] = id
			}
		}
		if strings.TrimSpace(in.Mode) == "" {
			missing = append(missing, "mode")
		}
		if !in.Amount.IsPositive() {
			missing = append(missing, "amount")
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("entry %d: missing or invalid %s", i, strings.Join(missing, ", ")))
		}
	}
	if len(problems) > 0 {
		return nil, invalidf("payment batch rejected: %s", strings.Join(problems, "; "))
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var rows []models.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoices := repository.NewInvoiceRepository(tx)
		payments := repository.NewPaymentRepository(tx)

		remaining := make(map[uuid.UUID]decimal.Decimal)
		for i, in := range inputs {
			id := invoiceIDs[i]
			if _, seen := remaining[id]; !seen {
				invoice, err := invoices.GetByIDForUpdate(ctx, id)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return invalidf("entry %d: invoice %s not found", i, id)
				}
				if err != nil {
					return err
				}
				prior, err := payments.ListByInvoice(ctx, id)
				if err != nil {
					return err
				}
				remainder, err := Outstanding(*invoice, prior)
				if err != nil {
					return err
				}
				remaining[id] = remainder
			}

			remainder := remaining[id]
			if !remainder.IsPositive() {
				return &BusinessRuleError{
					Rule:    RuleAlreadySettled,
					Message: fmt.Sprintf("entry %d: invoice %s is already settled", i, id),
				}
			}
			if in.Amount.GreaterThan(remainder) {
				return &BusinessRuleError{
					Rule:    RuleOverpayment,
					Message: fmt.Sprintf("entry %d: payment %s exceeds outstanding balance %s", i, in.Amount, remainder),
				}
			}
			remaining[id] = remainder.Sub(in.Amount)
		}

		// Every entry cleared validation; persist the batch.
		now := time.Now()
		rows = make([]models.Payment, len(inputs))
		for i, in := range inputs {
			date := in.PaymentDate
			if date.IsZero() {
				date = now
			}
			rows[i] = models.Payment{
				ID:          uuid.New(),
				InvoiceID:   invoiceIDs[i],
				Mode:        in.Mode,
				Amount:      in.Amount,
				PaymentDate: datatypes.Date(date),
				CreatedAt:   now,
			}
		}
		return payments.CreateAll(ctx, rows)
	})
	if err != nil {
		return nil, wrap("create payments", err)
	}

	s.log.Info("payment batch committed", zap.Int("count", len(rows)))
	return rows, nil
}

// ListPayments returns every payment with client name, invoice number, and the
// invoice's current outstanding balance.
func (s *Service) ListPayments(ctx context.Context) ([]PaymentSummary, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]PaymentSummary, 0, len(snap.payments))
	for _, p := range snap.payments {
		invoice := snap.invoicesByID[p.InvoiceID]
		remainder, err := Outstanding(invoice, snap.paymentsByInvoice[p.InvoiceID])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, PaymentSummary{
			Payment:       p,
			ClientName:    snap.clientsByID[invoice.ClientID].FullName,
			InvoiceNumber: invoice.InvoiceNumber,
			Outstanding:   remainder,
		})
	}
	return summaries, nil
}

// DeletePayment hard-deletes one payment after an existence check. The
// invoice's outstanding balance grows back by the deleted amount on the next
// read; nothing else is touched.
func (s *Service) DeletePayment(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if _, err := s.payments.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "payment", ID: id.String()}
		}
		return wrap("get payment", err)
	}
	if err := s.payments.Delete(ctx, id); err != nil {
		return wrap("delete payment", err)
	}
	s.log.Info("payment deleted", zap.String("payment_id", id.String()))
	return nil
}
