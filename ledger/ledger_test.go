package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Thegd17/grocery-ledger-automation/command"
	"github.com/Thegd17/grocery-ledger-automation/customer"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func record(name string, balance int64) customer.Customer {
	return customer.Customer{ID: uuid.New(), Name: name, Balance: balance}
}

func TestExecute_CreateCustomer(t *testing.T) {
	d := Execute(command.Intent{Kind: command.CreateCustomer, Name: "Ravi"}, nil, now)

	if d.Mutation == nil || d.Mutation.Kind != MutationCreate {
		t.Fatalf("expected create mutation, got %+v", d.Mutation)
	}
	if d.Mutation.Name != "Ravi" || d.Mutation.Balance != 0 {
		t.Errorf("expected new record Ravi with balance 0, got %+v", d.Mutation)
	}
	if d.Mutation.LastActivity != "Account Created" {
		t.Errorf("expected activity marker 'Account Created', got %q", d.Mutation.LastActivity)
	}
}

func TestExecute_CreateDuplicateRejected(t *testing.T) {
	snapshot := []customer.Customer{record("Ravi", 10)}

	// Same name, different case.
	d := Execute(command.Intent{Kind: command.CreateCustomer, Name: "RAVI"}, snapshot, now)

	if d.Mutation != nil {
		t.Fatalf("duplicate create must not mutate, got %+v", d.Mutation)
	}
	if !strings.Contains(d.Reply, "already exists") {
		t.Errorf("expected duplicate rejection, got %q", d.Reply)
	}
}

func TestExecute_Credit(t *testing.T) {
	c := record("Ravi", 100)
	d := Execute(command.Intent{Kind: command.Credit, Name: "ravi", Amount: 50}, []customer.Customer{c}, now)

	if d.Mutation == nil || d.Mutation.Kind != MutationUpdate {
		t.Fatalf("expected update mutation, got %+v", d.Mutation)
	}
	if d.Mutation.ID != c.ID {
		t.Errorf("mutation targets wrong record")
	}
	if d.Mutation.Balance != 150 {
		t.Errorf("expected balance 150, got %d", d.Mutation.Balance)
	}
	if !strings.Contains(d.Reply, "150") {
		t.Errorf("reply should show new total, got %q", d.Reply)
	}
}

func TestExecute_Payment(t *testing.T) {
	c := record("Ravi", 100)
	d := Execute(command.Intent{Kind: command.Payment, Name: "Ravi", Amount: 20}, []customer.Customer{c}, now)

	if d.Mutation == nil || d.Mutation.Balance != 80 {
		t.Fatalf("expected balance 80, got %+v", d.Mutation)
	}
	if !strings.Contains(d.Reply, "80") {
		t.Errorf("reply should show remaining balance, got %q", d.Reply)
	}
}

func TestExecute_PaymentExactlyBalance(t *testing.T) {
	c := record("Ravi", 100)
	d := Execute(command.Intent{Kind: command.Payment, Name: "Ravi", Amount: 100}, []customer.Customer{c}, now)

	if d.Mutation == nil || d.Mutation.Balance != 0 {
		t.Fatalf("paying the full balance should leave 0, got %+v", d.Mutation)
	}
}

func TestExecute_OverpaymentRejected(t *testing.T) {
	c := record("Maya", 100)
	d := Execute(command.Intent{Kind: command.Payment, Name: "Maya", Amount: 150}, []customer.Customer{c}, now)

	if d.Mutation != nil {
		t.Fatalf("overpayment must not mutate, got %+v", d.Mutation)
	}
	if !strings.Contains(d.Reply, "100") || !strings.Contains(d.Reply, "150") {
		t.Errorf("overpayment reply should reference both amounts, got %q", d.Reply)
	}
}

func TestExecute_Clear(t *testing.T) {
	c := record("Ravi", 75)
	d := Execute(command.Intent{Kind: command.Clear, Name: "Ravi"}, []customer.Customer{c}, now)

	if d.Mutation == nil || d.Mutation.Balance != 0 {
		t.Fatalf("clear should zero the balance, got %+v", d.Mutation)
	}
	if !strings.Contains(d.Reply, "75") {
		t.Errorf("reply should show collected amount, got %q", d.Reply)
	}
	if !strings.HasSuffix(d.Mutation.LastActivity, "(Cleared)") {
		t.Errorf("activity marker should note the clear, got %q", d.Mutation.LastActivity)
	}
}

func TestExecute_ClearAlreadyClearIsNoop(t *testing.T) {
	c := record("Ravi", 0)
	d := Execute(command.Intent{Kind: command.Clear, Name: "Ravi"}, []customer.Customer{c}, now)

	if d.Mutation != nil {
		t.Fatalf("clearing a settled account must not mutate, got %+v", d.Mutation)
	}
	if !strings.Contains(d.Reply, "already clear") {
		t.Errorf("expected already-clear reply, got %q", d.Reply)
	}
}

func TestExecute_DeleteOnlyAtZero(t *testing.T) {
	owing := record("Ravi", 50)
	d := Execute(command.Intent{Kind: command.DeleteCustomer, Name: "Ravi"}, []customer.Customer{owing}, now)
	if d.Mutation != nil {
		t.Fatalf("delete with outstanding balance must not mutate, got %+v", d.Mutation)
	}
	if !strings.Contains(d.Reply, "50") {
		t.Errorf("rejection should show the outstanding balance, got %q", d.Reply)
	}

	settled := record("Ravi", 0)
	d = Execute(command.Intent{Kind: command.DeleteCustomer, Name: "ravi"}, []customer.Customer{settled}, now)
	if d.Mutation == nil || d.Mutation.Kind != MutationDelete || d.Mutation.ID != settled.ID {
		t.Fatalf("expected delete mutation for settled account, got %+v", d.Mutation)
	}
}

func TestExecute_QueryUsesCanonicalName(t *testing.T) {
	c := record("Ravi Kumar", 30)
	d := Execute(command.Intent{Kind: command.Query, Name: "ravi kumar"}, []customer.Customer{c}, now)

	if d.Mutation != nil {
		t.Fatalf("query must not mutate")
	}
	if !strings.Contains(d.Reply, "Ravi Kumar") || !strings.Contains(d.Reply, "30") {
		t.Errorf("reply should show stored name and balance, got %q", d.Reply)
	}
}

func TestExecute_NotFound(t *testing.T) {
	snapshot := []customer.Customer{record("Ravi", 10)}

	for _, intent := range []command.Intent{
		{Kind: command.Query, Name: "Maya"},
		{Kind: command.Credit, Name: "Maya", Amount: 10},
		{Kind: command.Payment, Name: "Maya", Amount: 10},
		{Kind: command.Clear, Name: "Maya"},
		{Kind: command.DeleteCustomer, Name: "Maya"},
		{Kind: command.Unrecognized},
	} {
		d := Execute(intent, snapshot, now)
		if d.Mutation != nil {
			t.Errorf("%s on missing customer must not mutate", intent.Kind)
		}
		if !strings.Contains(d.Reply, "not found") {
			t.Errorf("%s on missing customer should reply not found, got %q", intent.Kind, d.Reply)
		}
	}
}

func TestExecute_ListDues(t *testing.T) {
	snapshot := []customer.Customer{
		record("Ravi", 50),
		record("Maya", 0),
		record("Asha", 30),
	}

	d := Execute(command.Intent{Kind: command.ListDues}, snapshot, now)
	if d.Mutation != nil {
		t.Fatalf("list must not mutate")
	}
	if !strings.Contains(d.Reply, "Ravi") || !strings.Contains(d.Reply, "Asha") {
		t.Errorf("list should include owing customers, got %q", d.Reply)
	}
	if strings.Contains(d.Reply, "Maya") {
		t.Errorf("list should exclude settled customers, got %q", d.Reply)
	}
}

func TestExecute_ListDuesEmpty(t *testing.T) {
	snapshot := []customer.Customer{record("Maya", 0)}

	d := Execute(command.Intent{Kind: command.ListDues}, snapshot, now)
	if !strings.Contains(d.Reply, "No pending dues") {
		t.Errorf("expected no-dues reply, got %q", d.Reply)
	}
}

func TestExecute_TotalDues(t *testing.T) {
	snapshot := []customer.Customer{
		record("Ravi", 50),
		record("Maya", 0),
		record("Asha", 30),
	}

	d := Execute(command.Intent{Kind: command.TotalDues}, snapshot, now)
	if !strings.Contains(d.Reply, "80") || !strings.Contains(d.Reply, "2") {
		t.Errorf("total should sum owing balances with a count, got %q", d.Reply)
	}
}

func TestExecute_HelpNeedsNoSnapshot(t *testing.T) {
	d := Execute(command.Intent{Kind: command.Help}, nil, now)
	if d.Mutation != nil {
		t.Fatalf("help must not mutate")
	}
	for _, cmd := range []string{"Add", "Show All", "Total", "Del"} {
		if !strings.Contains(d.Reply, cmd) {
			t.Errorf("help should mention %q, got %q", cmd, d.Reply)
		}
	}
}
