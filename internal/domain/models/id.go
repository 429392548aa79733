package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Record id prefixes, one per table.
const (
	PrefixTenant    = "usr"
	PrefixInventory = "itm"
	PrefixSale      = "sal"
	PrefixPurchase  = "pur"
	PrefixExpense   = "exp"
)

// NewID returns a collision-resistant record identifier with a type prefix.
// Ids key remote upserts, so they must stay unique under rapid generation.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
