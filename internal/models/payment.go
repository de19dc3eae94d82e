package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Payment rows are immutable once written; the only mutation is a hard delete.
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;index" json:"invoice_id"`
	Mode        string          `json:"mode"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4)" json:"amount"`
	PaymentDate datatypes.Date  `json:"payment_date"`
	CreatedAt   time.Time       `json:"date_created"`
}
