package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutstandingReportSkipsSettledInvoices(t *testing.T) {
	s := newTestService(t)
	client := seedClient(t, s)
	open := seedInvoice(t, s, client.ID, "100.00")
	pay(t, s, open.ID, "30.00")
	settled := seedInvoice(t, s, client.ID, "50.00")
	pay(t, s, settled.ID, "50.00")

	rows, err := s.OutstandingReport(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, open.InvoiceNumber, rows[0].InvoiceNumber)
	assert.Equal(t, "Ada Lovelace", rows[0].ClientName)
	assert.True(t, rows[0].TotalPaid.Equal(dec("30.00")), "got %s", rows[0].TotalPaid)
	assert.True(t, rows[0].Outstanding.Equal(dec("70.00")), "got %s", rows[0].Outstanding)
}

func TestOverallReportAggregatesPerClient(t *testing.T) {
	s := newTestService(t)
	client := seedClient(t, s)
	first := seedInvoice(t, s, client.ID, "100.00")
	pay(t, s, first.ID, "60.00")
	seedInvoice(t, s, client.ID, "50.00")

	other, err := s.CreateClient(context.Background(), ClientInput{
		FullName: "Charles Babbage",
		Address:  "1 Engine Court",
		Contact:  "charles@example.com",
	})
	require.NoError(t, err)

	rows, err := s.OverallReport(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := make(map[string]OverallReportRow)
	for _, r := range rows {
		byID[r.ClientID.String()] = r
	}

	ada := byID[client.ID.String()]
	assert.Equal(t, 2, ada.InvoiceCount)
	assert.True(t, ada.TotalInvoiced.Equal(dec("150.00")), "got %s", ada.TotalInvoiced)
	assert.True(t, ada.TotalPaid.Equal(dec("60.00")), "got %s", ada.TotalPaid)
	assert.True(t, ada.Balance.Equal(dec("90.00")), "got %s", ada.Balance)

	charles := byID[other.ID.String()]
	assert.Equal(t, 0, charles.InvoiceCount)
	assert.True(t, charles.Balance.IsZero())
}

func TestPaymentReportListsHistory(t *testing.T) {
	s := newTestService(t)
	client := seedClient(t, s)
	invoice := seedInvoice(t, s, client.ID, "100.00")
	pay(t, s, invoice.ID, "30.00")
	pay(t, s, invoice.ID, "20.00")

	rows, err := s.PaymentReport(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "Ada Lovelace", r.ClientName)
		assert.Equal(t, invoice.InvoiceNumber, r.InvoiceNumber)
		assert.Equal(t, "cash", r.Mode)
	}
}
