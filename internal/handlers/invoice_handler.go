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

type invoiceEntry struct {
	ClientID string          `json:"client_id"`
	Item     string          `json:"item"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  string          `json:"due_date"` // "yyyy-mm-dd" or "dd-mm-yyyy"
	Status   string          `json:"status"`
}

type invoiceBatchPayload struct {
	Invoices []invoiceEntry `json:"invoices" binding:"required"`
}

type invoicePatchPayload struct {
	Amount *decimal.Decimal `json:"amount"`
	Item   *string          `json:"item"`
}

// ListInvoices serves both forms of GET /invoices: without client_id it lists
// every invoice with client name and total paid; with client_id it returns
// that client's unpaid invoices.
func (h *LedgerHandler) ListInvoices(c *gin.Context) {
	if raw, ok := c.GetQuery("client_id"); ok {
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation, "message": "missing client_id"})
			return
		}
		clientID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation, "message": "invalid client_id"})
			return
		}
		invoices, err := h.service.UnpaidInvoices(c.Request.Context(), clientID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, invoices)
		return
	}

	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *LedgerHandler) CreateInvoices(c *gin.Context) {
	var payload invoiceBatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	inputs := make([]ledger.InvoiceInput, len(payload.Invoices))
	for i, entry := range payload.Invoices {
		var dueDate time.Time
		if entry.DueDate != "" {
			parsed, err := parseDate(entry.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   codeValidation,
					"message": fmt.Sprintf("entry %d: invalid due_date format, expected yyyy-mm-dd", i),
				})
				return
			}
			dueDate = parsed
		}
		inputs[i] = ledger.InvoiceInput{
			ClientID: entry.ClientID,
			Item:     entry.Item,
			Amount:   entry.Amount,
			DueDate:  dueDate,
			Status:   entry.Status,
		}
	}

	invoices, err := h.service.CreateInvoices(c.Request.Context(), inputs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "invoices created", "invoices": invoices})
}

func (h *LedgerHandler) UpdateInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation, "message": "invalid invoice ID"})
		return
	}

	var payload invoicePatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.service.UpdateInvoice(c.Request.Context(), id, ledger.InvoicePatch{
		Amount: payload.Amount,
		Item:   payload.Item,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice updated", "invoice": invoice})
}

func (h *LedgerHandler) DeleteInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation, "message": "invalid invoice ID"})
		return
	}

	if err := h.service.DeleteInvoice(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice deleted"})
}
