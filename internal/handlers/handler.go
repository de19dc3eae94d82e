package handler

import (
	"billing-ledger-backend/internal/services/ledger"
)

type LedgerHandler struct {
	service *ledger.Service
}

func NewLedgerHandler(s *ledger.Service) *LedgerHandler {
	return &LedgerHandler{service: s}
}
