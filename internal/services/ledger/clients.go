package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"billing-ledger-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClientInput struct {
	FullName string
	Address  string
	Contact  string
}

// ClientSummary is a client row plus its derived aggregate balance: the sum of
// outstanding over the client's invoices, recomputed on every read.
type ClientSummary struct {
	models.Client
	Balance decimal.Decimal `json:"balance"`
}

func (s *Service) CreateClient(ctx context.Context, in ClientInput) (*models.Client, error) {
	var missing []string
	if strings.TrimSpace(in.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(in.Contact) == "" {
		missing = append(missing, "contact")
	}
	if len(missing) > 0 {
		return nil, invalidf("missing required field(s): %s", strings.Join(missing, ", "))
	}

	client := &models.Client{
		ID:        uuid.New(),
		FullName:  in.FullName,
		Address:   in.Address,
		Contact:   in.Contact,
		CreatedAt: time.Now(),
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, wrap("create client", err)
	}
	s.log.Info("client created", zap.String("client_id", client.ID.String()))
	return client, nil
}

func (s *Service) ListClients(ctx context.Context) ([]ClientSummary, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	balances := make(map[uuid.UUID]decimal.Decimal, len(snap.clients))
	for _, inv := range snap.invoices {
		remainder, err := Outstanding(inv, snap.paymentsByInvoice[inv.ID])
		if err != nil {
			return nil, err
		}
		balances[inv.ClientID] = balances[inv.ClientID].Add(remainder)
	}

	summaries := make([]ClientSummary, 0, len(snap.clients))
	for _, c := range snap.clients {
		summaries = append(summaries, ClientSummary{Client: c, Balance: balances[c.ID]})
	}
	return summaries, nil
}

func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (*ClientSummary, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	client, err := s.clients.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "client", ID: id.String()}
	}
	if err != nil {
		return nil, wrap("get client", err)
	}

	balance, err := s.clientBalance(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ClientSummary{Client: *client, Balance: balance}, nil
}

// clientBalance derives the aggregate balance for one client.
func (s *Service) clientBalance(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	invoices, err := s.invoices.ListByClient(ctx, clientID)
	if err != nil {
		return decimal.Zero, wrap("list client invoices", err)
	}
	balance := decimal.Zero
	for _, inv := range invoices {
		payments, err := s.payments.ListByInvoice(ctx, inv.ID)
		if err != nil {
			return decimal.Zero, wrap("list invoice payments", err)
		}
		remainder, err := Outstanding(inv, payments)
		if err != nil {
			return decimal.Zero, err
		}
		balance = balance.Add(remainder)
	}
	return balance, nil
}

// DeleteClient removes a client that owns no invoices. A client with live
// invoices is rejected rather than orphaning its ledger history.
func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if _, err := s.clients.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "client", ID: id.String()}
		}
		return wrap("get client", err)
	}

	count, err := s.invoices.CountByClient(ctx, id)
	if err != nil {
		return wrap("count client invoices", err)
	}
	if count > 0 {
		return &ConflictError{Message: "client still owns invoices; delete them first"}
	}

	if err := s.clients.Delete(ctx, id); err != nil {
		return wrap("delete client", err)
	}
	s.log.Info("client deleted", zap.String("client_id", id.String()))
	return nil
}
