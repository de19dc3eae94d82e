package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"billing-ledger-backend/internal/services/ledger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error response codes; one per taxonomy category. Internal detail never
// leaks for persistence failures.
const (
	codeValidation   = "validation_error"
	codeNotFound     = "not_found"
	codeBusinessRule = "business_rule_violation"
	codeConflict     = "conflict"
	codePersistence  = "persistence_error"
)

func respondError(c *gin.Context, err error) {
	var (
		ve *ledger.ValidationError
		nf *ledger.NotFoundError
		br *ledger.BusinessRuleError
		ce *ledger.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation, "message": ve.Message})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": codeNotFound, "message": nf.Error()})
	case errors.As(err, &br):
		c.JSON(http.StatusBadRequest, gin.H{"error": codeBusinessRule, "rule": br.Rule, "message": br.Message})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{"error": codeConflict, "message": ce.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": codePersistence, "message": "store operation failed"})
	}
}

// respondBindError turns gin binding failures into the same envelope as a
// ValidationError, naming the offending fields when the validator reports
// them.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   codeValidation,
			"message": "missing or invalid field(s): " + strings.Join(fields, ", "),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation, "message": "invalid request body"})
}

// parseDate accepts both date layouts callers submit.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse("02-01-2006", s)
}
