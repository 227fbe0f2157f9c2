// Package ledger decides how one intent changes the ledger.
//
// Execute is a pure function over a snapshot of the customer records: it
// never talks to the store, it returns at most one mutation, and the
// dispatcher is responsible for snapshot freshness and for applying the
// mutation. That keeps every invariant testable without a database.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Thegd17/grocery-ledger-automation/command"
	"github.com/Thegd17/grocery-ledger-automation/customer"
)

type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// Mutation is the single store write a decision may require. ID identifies a
// record from the snapshot for updates and deletes; Name, Balance and
// LastActivity describe the row to write for creates and updates.
type Mutation struct {
	Kind         MutationKind
	ID           uuid.UUID
	Name         string
	Balance      int64
	LastActivity string
}

// Decision is the outcome for one message: exactly one reply, at most one
// mutation. A nil Mutation means the store is untouched.
type Decision struct {
	Reply    string
	Mutation *Mutation
}

const helpText = `Commands:
1. "Add Name" - new customer
2. "Name 50" - add to the bill
3. "Name -20" - record a payment
4. "Name nil" - clear the account
5. "Show All" or "All Udhari" - list dues
6. "Total" - outstanding summary
7. "Del Name" - delete customer`

const markerCreated = "Account Created"

// Execute applies one intent against a snapshot of all records taken at now.
// All name matching is case-insensitive; replies use the stored canonical
// name. A successful operation never leaves a balance negative.
func Execute(intent command.Intent, customers []customer.Customer, now time.Time) Decision {
	switch intent.Kind {
	case command.Help:
		return Decision{Reply: helpText}
	case command.ListDues:
		return listDues(customers)
	case command.TotalDues:
		return totalDues(customers)
	case command.CreateCustomer:
		return create(intent.Name, customers)
	case command.DeleteCustomer:
		return remove(intent.Name, customers)
	case command.Credit:
		return credit(intent.Name, intent.Amount, customers, now)
	case command.Payment:
		return payment(intent.Name, intent.Amount, customers, now)
	case command.Clear:
		return clear(intent.Name, customers, now)
	default:
		// Query and Unrecognized both degrade to a balance lookup on
		// whatever text was given.
		return query(intent.Name, customers)
	}
}

func listDues(customers []customer.Customer) Decision {
	report := "All pending dues:\n"
	found := false
	for _, c := range customers {
		if c.Balance > 0 {
			report += fmt.Sprintf("%s: %d\n", c.Name, c.Balance)
			found = true
		}
	}
	if !found {
		return Decision{Reply: "No pending dues in the market."}
	}
	return Decision{Reply: report}
}

func totalDues(customers []customer.Customer) Decision {
	var total int64
	var count int
	for _, c := range customers {
		if c.Balance > 0 {
			total += c.Balance
			count++
		}
	}
	return Decision{Reply: fmt.Sprintf("Total outstanding: %d from %d customers.", total, count)}
}

func create(name string, customers []customer.Customer) Decision {
	if existing, ok := customer.Find(customers, name); ok {
		return Decision{Reply: fmt.Sprintf("%q already exists.", existing.Name)}
	}
	return Decision{
		Reply: fmt.Sprintf("Added new customer: %s.", name),
		Mutation: &Mutation{
			Kind:         MutationCreate,
			Name:         name,
			Balance:      0,
			LastActivity: markerCreated,
		},
	}
}

func remove(name string, customers []customer.Customer) Decision {
	c, ok := customer.Find(customers, name)
	if !ok {
		return Decision{Reply: fmt.Sprintf("Cannot delete. Customer %q not found.", name)}
	}
	if c.Balance > 0 {
		return Decision{Reply: fmt.Sprintf("%s still owes %d. Clear the due before deleting.", c.Name, c.Balance)}
	}
	return Decision{
		Reply:    fmt.Sprintf("Customer %s has been removed.", name),
		Mutation: &Mutation{Kind: MutationDelete, ID: c.ID},
	}
}

func query(name string, customers []customer.Customer) Decision {
	c, ok := customer.Find(customers, name)
	if !ok {
		return Decision{Reply: fmt.Sprintf("Customer %q not found.", name)}
	}
	return Decision{Reply: fmt.Sprintf("%s\nCurrent due: %d", c.Name, c.Balance)}
}

func credit(name string, amount int64, customers []customer.Customer, now time.Time) Decision {
	c, ok := customer.Find(customers, name)
	if !ok {
		return Decision{Reply: fmt.Sprintf("Customer %q not found.", name)}
	}
	balance := c.Balance + amount
	return Decision{
		Reply: fmt.Sprintf("Added %d to %s. Total due: %d.", amount, c.Name, balance),
		Mutation: &Mutation{
			Kind:         MutationUpdate,
			ID:           c.ID,
			Name:         c.Name,
			Balance:      balance,
			LastActivity: now.Format(time.RFC3339),
		},
	}
}

func payment(name string, amount int64, customers []customer.Customer, now time.Time) Decision {
	c, ok := customer.Find(customers, name)
	if !ok {
		return Decision{Reply: fmt.Sprintf("Customer %q not found.", name)}
	}
	// Strict rejection rather than clamping to zero: an overpayment is
	// almost always a typo on the shopkeeper's side.
	if amount > c.Balance {
		return Decision{Reply: fmt.Sprintf("Overpayment warning: %s only owes %d, you entered %d.", c.Name, c.Balance, amount)}
	}
	balance := c.Balance - amount
	return Decision{
		Reply: fmt.Sprintf("Payment of %d received. %s remaining: %d.", amount, c.Name, balance),
		Mutation: &Mutation{
			Kind:         MutationUpdate,
			ID:           c.ID,
			Name:         c.Name,
			Balance:      balance,
			LastActivity: now.Format(time.RFC3339),
		},
	}
}

func clear(name string, customers []customer.Customer, now time.Time) Decision {
	c, ok := customer.Find(customers, name)
	if !ok {
		return Decision{Reply: fmt.Sprintf("Customer %q not found.", name)}
	}
	if c.Balance == 0 {
		return Decision{Reply: fmt.Sprintf("%s is already clear.", c.Name)}
	}
	return Decision{
		Reply: fmt.Sprintf("Cleared. Collected %d from %s; balance is now 0.", c.Balance, c.Name),
		Mutation: &Mutation{
			Kind:         MutationUpdate,
			ID:           c.ID,
			Name:         c.Name,
			Balance:      0,
			LastActivity: now.Format(time.RFC3339) + " (Cleared)",
		},
	}
}
