package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OutstandingReportRow struct {
	ClientName    string          `json:"client_name"`
	InvoiceNumber string          `json:"invoice_number"`
	Item          string          `json:"item"`
	Amount        decimal.Decimal `json:"amount"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	DueDate       datatypes.Date  `json:"due_date"`
	Status        string          `json:"status"`
}

type OverallReportRow struct {
	ClientID      uuid.UUID       `json:"client_id"`
	FullName      string          `json:"full_name"`
	InvoiceCount  int             `json:"invoice_count"`
	TotalInvoiced decimal.Decimal `json:"total_invoiced"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Balance       decimal.Decimal `json:"balance"`
}

type PaymentReportRow struct {
	ClientName    string          `json:"client_name"`
	InvoiceNumber string          `json:"invoice_number"`
	Mode          string          `json:"mode"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   datatypes.Date  `json:"payment_date"`
}

// OutstandingReport lists every invoice still carrying a balance.
func (s *Service) OutstandingReport(ctx context.Context) ([]OutstandingReportRow, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]OutstandingReportRow, 0, len(snap.invoices))
	for _, inv := range snap.invoices {
		payments := snap.paymentsByInvoice[inv.ID]
		remainder, err := Outstanding(inv, payments)
		if err != nil {
			return nil, err
		}
		if !remainder.IsPositive() {
			continue
		}
		rows = append(rows, OutstandingReportRow{
			ClientName:    snap.clientsByID[inv.ClientID].FullName,
			InvoiceNumber: inv.InvoiceNumber,
			Item:          inv.Item,
			Amount:        inv.Amount,
			TotalPaid:     TotalPaid(payments),
			Outstanding:   remainder,
			DueDate:       inv.DueDate,
			Status:        inv.Status,
		})
	}
	return rows, nil
}

// OverallReport aggregates invoiced, paid, and balance per client.
func (s *Service) OverallReport(ctx context.Context) ([]OverallReportRow, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]*OverallReportRow, len(snap.clients))
	rows := make([]OverallReportRow, 0, len(snap.clients))
	for _, c := range snap.clients {
		totals[c.ID] = &OverallReportRow{ClientID: c.ID, FullName: c.FullName}
	}
	for _, inv := range snap.invoices {
		row, ok := totals[inv.ClientID]
		if !ok {
			continue
		}
		paid := TotalPaid(snap.paymentsByInvoice[inv.ID])
		remainder, err := Outstanding(inv, snap.paymentsByInvoice[inv.ID])
		if err != nil {
			return nil, err
		}
		row.InvoiceCount++
		row.TotalInvoiced = row.TotalInvoiced.Add(inv.Amount)
		row.TotalPaid = row.TotalPaid.Add(paid)
		row.Balance = row.Balance.Add(remainder)
	}
	for _, c := range snap.clients {
		rows = append(rows, *totals[c.ID])
	}
	return rows, nil
}

// PaymentReport lists the payment history, newest first.
func (s *Service) PaymentReport(ctx context.Context) ([]PaymentReportRow, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]PaymentReportRow, 0, len(snap.payments))
	for _, p := range snap.payments {
		invoice := snap.invoicesByID[p.InvoiceID]
		rows = append(rows, PaymentReportRow{
			ClientName:    snap.clientsByID[invoice.ClientID].FullName,
			InvoiceNumber: invoice.InvoiceNumber,
			Mode:          p.Mode,
			Amount:        p.Amount,
			PaymentDate:   p.PaymentDate,
		})
	}
	return rows, nil
}
