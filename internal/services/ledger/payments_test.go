package ledger

import (
	"context"
	"testing"
	"time"

	"billing-ledger-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentInput(invoiceID uuid.UUID, amount string) PaymentInput {
	return PaymentInput{InvoiceID: invoiceID.String(), Mode: "cash", Amount: dec(amount)}
}

func TestCreatePaymentsEmptyBatch(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreatePayments(context.Background(), nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCreatePaymentsMissingFields(t *testing.T) {
	s := newTestService(t)
	client := seedClient(t, s)
	invoice := seedInvoice(t, s, client.ID, "100.00")

	inputs := []PaymentInput{
		paymentInput(invoice.ID, "10.00"),
		{InvoiceID: invoice.ID.String()}, // no mode, no amount
	}
	_, err := s.CreatePayments(context.Background(), inputs)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "entry 1")
	assert.Contains(t, ve.Message, "mode")
	assert.Contains(t, ve.Message, "amount")
	assert.Zero(t, countRows(t, s, &models.Payment{}))
}

func TestCreatePaymentsUnknownInvoice(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreatePayments(context.Background(), []PaymentInput{paymentInput(uuid.New(), "10.00")})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "not found")
}

func TestCreatePaymentsSettledInvoiceRejected(t *testing.T) {
	s := newTestService(t)
	client := seedClient(t, s)
	invoice := seedInvoice(t, s, client.ID, "100.00")
	pay(t, s, invoice.ID, "100.00")

	_, err := s.CreatePayments(context.Background(), []PaymentInput{paymentInput(invoice.ID, "1.00")})
	var br *BusinessRuleError
	require.ErrorAs(t, err, &br)
	assert.Equal(t, RuleAlreadySettled, br.Rule)
}

func TestCreatePaymentsOverpaymentRejectsWholeBatch(t *testing.T) {
	s := newTestService(t)
	client := seedClient(t, s)
	a := seedInvoice(t, s, client.ID, "100.00")
	b := seedInvoice(t, s, client.ID, "50.00")

	inputs := []PaymentInput{
		paymentInput(a.ID, "40.00"), // fine on its own
		paymentInput(b.ID, "60.00"), // exceeds b's balance
	}
	_, err := s.CreatePayments(context.Background(), inputs)
	var br *BusinessRuleError
	require.ErrorAs(t, err, &br)
	assert.Equal(t, RuleOverpayment, br.Rule)

	// the store is untouched, including the entry that would have passed
	assert.Zero(t, countRows(t, s, &models.Payment{}))
	remaining, err := Outstanding(a, nil)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(dec("100.00")))
}

// Two entries in one batch must not jointly overdraw an invoice: the second
// entry is validated against what the first already consumed, not against the
// stored balance alone.
func TestCreatePaymentsIntraBatchDoubleSpendRejected(t *testing.T) {
	s := newTestService(t)
	client := seedClient(t, s)
	invoice := seedInvoice(t, s, client.ID, "100.00")

	inputs := []PaymentInput{
		paymentInput(invoice.ID, "60.00"),
		paymentInput(invoice.ID, "50.00"),
	}
	_, err := s.CreatePayments(context.Background(), inputs)
	var br *BusinessRuleError
	require.ErrorAs(t, err, &br)
	assert.Equal(t, RuleOverpayment, br.Rule)
	assert.Zero(t, countRows(t, s, &models.Payment{}))

	// the same batch sized to the balance goes through and settles it
	inputs[1].Amount = dec("40.00")
	payments, err := s.CreatePayments(context.Background(), inputs)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	unpaid, err := s.UnpaidInvoices(context.Background(), client.ID)
	require.NoError(t, err)
	assert.Empty(t, unpaid)
}

func TestCreatePaymentsDefaultsPaymentDate(t *testing.T) {
	s := newTestService(t)
	client := seedClient(t, s)
	invoice := seedInvoice(t, s, client.ID, "100.00")

	payments, err := s.CreatePayments(context.Background(), []PaymentInput{paymentInput(invoice.ID, "10.00")})
	require.NoError(t, err)
	assert.False(t, time.Time(payments[0].PaymentDate).IsZero())

	explicit := paymentInput(invoice.ID, "10.00")
	explicit.PaymentDate = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	payments, err = s.CreatePayments(context.Background(), []PaymentInput{explicit})
	require.NoError(t, err)
	assert.Equal(t, 2026, time.Time(payments[0].PaymentDate).Year())
	assert.Equal(t, time.August, time.Time(payments[0].PaymentDate).Month())
}

func TestListPaymentsJoinsInvoiceAndClient(t *testing.T) {
	s := newTestService(t)
	client := seedClient(t, s)
	invoice := seedInvoice(t, s, client.ID, "100.00")
	pay(t, s, invoice.ID, "30.00")

	payments, err := s.ListPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 1)
	row := payments[0]
	assert.Equal(t, "Ada Lovelace", row.ClientName)
	assert.Equal(t, invoice.InvoiceNumber, row.InvoiceNumber)
	assert.True(t, row.Outstanding.Equal(dec("70.00")), "got %s", row.Outstanding)
}

func TestDeletePaymentRestoresBalance(t *testing.T) {
	s := newTestService(t)
	client := seedClient(t, s)
	invoice := seedInvoice(t, s, client.ID, "100.00")
	payment := pay(t, s, invoice.ID, "100.00")

	require.NoError(t, s.DeletePayment(context.Background(), payment.ID))

	unpaid, err := s.UnpaidInvoices(context.Background(), client.ID)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.True(t, unpaid[0].Outstanding.Equal(dec("100.00")))

	var nf *NotFoundError
	err = s.DeletePayment(context.Background(), payment.ID)
	assert.ErrorAs(t, err, &nf)
}
