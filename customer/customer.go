// Package customer holds the ledger's customer records.
package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer is one row of the ledger: a named account and the amount it
// currently owes the shop.
type Customer struct {
	ID uuid.UUID
	// Name is the canonical display name. Uniqueness is case-insensitive
	// and enforced by the executor before a create is issued, not by the
	// database.
	Name string
	// Balance is whole currency units owed. Never left negative by a
	// successful operation.
	Balance int64
	// LastActivity is an advisory marker for the most recent mutation
	// ("Account Created", an RFC3339 timestamp, ...). Not used in logic.
	LastActivity string    `db:"last_activity"`
	CreatedAt    time.Time `db:"created_at"`
}

// Find returns the record whose name matches case-insensitively.
func Find(customers []Customer, name string) (Customer, bool) {
	for _, c := range customers {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Customer{}, false
}
