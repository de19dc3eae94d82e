package ledger

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const invoiceNumberPrefix = "INV-"

// NewInvoiceNumber returns a display number like INV-3F2A9C01D4. The random
// suffix makes collisions unlikely, but uniqueness is guaranteed by the unique
// index on invoice_number, not by this generator: a collision at insert time
// surfaces as a ConflictError.
func NewInvoiceNumber() string {
	u := uuid.New()
	return invoiceNumberPrefix + strings.ToUpper(hex.EncodeToString(u[:5]))
}
