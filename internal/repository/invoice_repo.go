package repository

import (
	"context"

	"billing-ledger-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// CreateAll inserts the whole slice; callers wrap it in a transaction when the
// batch must be all-or-nothing.
func (r *InvoiceRepository) CreateAll(ctx context.Context, invoices []models.Invoice) error {
	return r.db.WithContext(ctx).Create(&invoices).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetByIDForUpdate fetches the invoice holding a row lock until the enclosing
// transaction commits. sqlite has a single writer per database, so the
// explicit lock is only issued on postgres.
func (r *InvoiceRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var invoice models.Invoice
	if err := q.First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).Order("created_at").Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at").Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}

func (r *InvoiceRepository) Save(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id).Error
}
