package ledger

import (
	"fmt"

	"billing-ledger-backend/internal/models"

	"github.com/shopspring/decimal"
)

// TotalPaid sums the recorded payments of one invoice.
func TotalPaid(payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Outstanding derives an invoice's unpaid remainder from its payment rows.
// The balance is never stored; this function is the single definition used by
// every read and every payment validation. It does not clamp: a negative
// remainder means committed payments exceed the invoice amount, which is a
// data-integrity failure, not a zero balance.
func Outstanding(invoice models.Invoice, payments []models.Payment) (decimal.Decimal, error) {
	paid := TotalPaid(payments)
	remainder := invoice.Amount.Sub(paid)
	if remainder.IsNegative() {
		return decimal.Zero, &PersistenceError{
			Op:  "derive balance",
			Err: fmt.Errorf("invoice %s has %s paid against amount %s", invoice.InvoiceNumber, paid, invoice.Amount),
		}
	}
	return remainder, nil
}
