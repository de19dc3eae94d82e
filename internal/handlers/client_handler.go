package handler

import (
	"net/http"

	"billing-ledger-backend/internal/services/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type clientPayload struct {
	FullName string `json:"full_name" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Contact  string `json:"contact" binding:"required"`
}

func (h *LedgerHandler) ListClients(c *gin.Context) {
	clients, err := h.service.ListClients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *LedgerHandler) CreateClient(c *gin.Context) {
	var payload clientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	client, err := h.service.CreateClient(c.Request.Context(), ledger.ClientInput{
		FullName: payload.FullName,
		Address:  payload.Address,
		Contact:  payload.Contact,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "client created", "client": client})
}

func (h *LedgerHandler) GetClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation, "message": "invalid client ID"})
		return
	}

	client, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *LedgerHandler) DeleteClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation, "message": "invalid client ID"})
		return
	}

	if err := h.service.DeleteClient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}
