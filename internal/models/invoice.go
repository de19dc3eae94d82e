package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID      uuid.UUID       `gorm:"type:uuid;index" json:"client_id"`
	InvoiceNumber string          `gorm:"uniqueIndex" json:"invoice_number"`
	Item          string          `json:"item"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4)" json:"amount"`
	DueDate       datatypes.Date  `json:"due_date"`
	Status        string          `gorm:"index;default:'Pending'" json:"status"`
	CreatedAt     time.Time       `json:"date_created"`
}
