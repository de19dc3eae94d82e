package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *LedgerHandler) OutstandingReport(c *gin.Context) {
	rows, err := h.service.OutstandingReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *LedgerHandler) OverallReport(c *gin.Context) {
	rows, err := h.service.OverallReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *LedgerHandler) PaymentReport(c *gin.Context) {
	rows, err := h.service.PaymentReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
