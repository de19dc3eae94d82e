package handler

import (
	"fmt"
	"net/http"
	"time"

	"billing-ledger-backend/internal/services/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type paymentEntry struct {
	InvoiceID   string          `json:"invoice_id"`
	Mode        string          `json:"mode"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"` // optional, defaults to today
}

type paymentBatchPayload struct {
	Payments []paymentEntry `json:"payments" binding:"required"`
}

func (h *LedgerHandler) ListPayments(c *gin.Context) {
	payments, err := h.service.ListPayments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *LedgerHandler) CreatePayments(c *gin.Context) {
	var payload paymentBatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	inputs := make([]ledger.PaymentInput, len(payload.Payments))
	for i, entry := range payload.Payments {
		var paymentDate time.Time
		if entry.PaymentDate != "" {
			parsed, err := parseDate(entry.PaymentDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   codeValidation,
					"message": fmt.Sprintf("entry %d: invalid payment_date format, expected yyyy-mm-dd", i),
				})
				return
			}
			paymentDate = parsed
		}
		inputs[i] = ledger.PaymentInput{
			InvoiceID:   entry.InvoiceID,
			Mode:        entry.Mode,
			Amount:      entry.Amount,
			PaymentDate: paymentDate,
		}
	}

	payments, err := h.service.CreatePayments(c.Request.Context(), inputs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "payments recorded", "payments": payments})
}

func (h *LedgerHandler) DeletePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation, "message": "invalid payment ID"})
		return
	}

	if err := h.service.DeletePayment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment deleted"})
}
